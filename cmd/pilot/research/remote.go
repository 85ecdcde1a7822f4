package researchcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"

	"github.com/papercomputeco/researchpilot/pkg/mission"
	"github.com/papercomputeco/researchpilot/pkg/sse"
)

// ErrStreamEnded is returned when a server closes the stream before sending a
// terminal event.
var ErrStreamEnded = errors.New("stream ended before the mission finished")

// streamRemote runs a mission on the pilot server at apiTarget and yields its
// events. Every raw stream line is copied to raw.
func streamRemote(ctx context.Context, apiTarget, topic string, raw io.Writer) iter.Seq2[mission.Event, error] {
	return func(yield func(mission.Event, error) bool) {
		researchURL, err := url.Parse(apiTarget)
		if err != nil {
			yield(nil, fmt.Errorf("invalid API target URL: %w", err))
			return
		}
		researchURL.Path = "/research"
		q := researchURL.Query()
		q.Set("topic", topic)
		researchURL.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, researchURL.String(), nil)
		if err != nil {
			yield(nil, fmt.Errorf("creating research request: %w", err))
			return
		}
		req.Header.Set("Accept", "text/event-stream")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			yield(nil, fmt.Errorf("failed to connect to pilot API at %s: %w", apiTarget, err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			yield(nil, fmt.Errorf("research request failed (HTTP %d): %s", resp.StatusCode, string(body)))
			return
		}

		reader := sse.NewTeeReader(resp.Body, raw)
		for {
			ev, err := reader.Next()
			if err != nil {
				yield(nil, fmt.Errorf("reading event stream: %w", err))
				return
			}
			if ev == nil {
				yield(nil, ErrStreamEnded)
				return
			}

			event, err := mission.DecodeEvent([]byte(ev.Data))
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) || mission.IsTerminal(event) {
				return
			}
		}
	}
}
