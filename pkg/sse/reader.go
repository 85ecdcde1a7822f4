package sse

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single SSE line. Final reports arrive as one data
// line, so this is generous.
const maxLineSize = 4 * 1024 * 1024

// Reader parses SSE events from a stream. Built with NewTeeReader it also
// writes every raw line, comments included, to a destination writer.
type Reader struct {
	scanner *bufio.Scanner
	dest    io.Writer

	current *Event
	hasData bool
}

// NewReader returns a Reader over src.
func NewReader(src io.Reader) *Reader {
	return NewTeeReader(src, io.Discard)
}

// NewTeeReader returns a Reader over src that copies the stream verbatim to
// dest as it is consumed.
func NewTeeReader(src io.Reader, dest io.Writer) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	return &Reader{
		scanner: scanner,
		dest:    dest,
		current: &Event{},
	}
}

// Next blocks until a complete event is available and returns it. It returns
// nil, nil once the source is exhausted. An event cut off by the end of the
// stream is still returned.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		raw := r.scanner.Text()

		if _, err := io.WriteString(r.dest, raw+"\n"); err != nil {
			return nil, err
		}

		if raw == "" {
			if r.hasData {
				ev := r.current
				r.reset()
				return ev, nil
			}
			continue
		}

		if strings.HasPrefix(raw, ":") {
			continue
		}

		r.parseLine(raw)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	if r.hasData {
		ev := r.current
		r.reset()
		return ev, nil
	}
	return nil, nil
}

// parseLine accumulates one "field:value" line into the current event. A
// single space after the colon is stripped.
func (r *Reader) parseLine(line string) {
	field, value, ok := strings.Cut(line, ":")
	if ok {
		value = strings.TrimPrefix(value, " ")
	}

	switch field {
	case "data":
		if r.hasData && r.current.Data != "" {
			r.current.Data += "\n"
		}
		r.current.Data += value
		r.hasData = true
	case "event":
		r.current.Type = value
		r.hasData = true
	case "id":
		r.current.ID = value
		r.hasData = true
	default:
		// "retry" and unknown fields are ignored.
	}
}

func (r *Reader) reset() {
	r.current = &Event{}
	r.hasData = false
}
