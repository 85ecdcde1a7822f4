// Package sse carries research mission events over Server-Sent Events.
//
// The server side frames each event as a single "data:" line holding its
// JSON encoding. The client side parses any SSE stream into Events and can
// optionally copy the raw bytes to a second writer as it reads.
//
// See https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

// Event is one parsed SSE event, delimited by a blank line in the stream.
type Event struct {
	// Type is the "event:" field. Empty means the default "message" type.
	Type string

	// Data joins every "data:" line of the event with "\n".
	Data string

	// ID is the "id:" field, if present.
	ID string
}
