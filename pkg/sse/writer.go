package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Headers are the response headers an SSE endpoint sets.
var Headers = map[string]string{
	"Content-Type":      "text/event-stream",
	"Cache-Control":     "no-cache",
	"Connection":        "keep-alive",
	"X-Accel-Buffering": "no",
}

// Writer frames values as SSE data events.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w. A *bufio.Writer is used as is so callers that stream
// through one (such as fasthttp body writers) share its buffer.
func NewWriter(w io.Writer) *Writer {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Writer{w: bw}
}

// WriteJSON writes v as "data: <json>\n\n" and flushes, so each event
// reaches the client as soon as it is produced.
func (w *Writer) WriteJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	return w.WriteData(string(b))
}

// WriteData writes data as one event. Embedded newlines become separate
// "data:" lines.
func (w *Writer) WriteData(data string) error {
	for line := range strings.SplitSeq(data, "\n") {
		if _, err := fmt.Fprintf(w.w, "data: %s\n", line); err != nil {
			return err
		}
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}
