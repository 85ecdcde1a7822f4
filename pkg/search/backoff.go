package search

import (
	"context"
	"net/http"
	"time"
)

// MaxBackoff bounds the delay between retries of a rate-limited request.
const MaxBackoff = 30 * time.Second

// DoWithBackoff sends the request built by newReq, retrying while the server
// answers 429, doubling the delay from one second up to MaxBackoff. Any other
// status is returned to the caller.
func DoWithBackoff(ctx context.Context, client *http.Client, newReq func() (*http.Request, error)) (*http.Response, error) {
	delay := time.Second
	for {
		req, err := newReq()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, MaxBackoff)
	}
}
