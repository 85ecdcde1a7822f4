// Package api provides the HTTP server that streams research missions over
// SSE, exposes memory search, and mounts the MCP endpoint.
//
// GET /research?topic=T answers with text/event-stream, one "data:" message
// per mission event, ending after the terminal event:
//
//	{"type":"stage","agent":"Planner","status":"active","msg":"Strategic planning initiated..."}
//	{"type":"complete","content":"<report>"}
//	{"type":"error","msg":"<message>"}
//
// Stage messages carry "type":"stage" so every message is tagged. Clients
// written against untyped stage payloads keep working: a payload with an
// "agent" and no "type" is a stage update, which is how mission.DecodeEvent
// reads it.
package api

import (
	apisearch "github.com/papercomputeco/researchpilot/api/search"
)

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// Orchestrator runs missions for /research. When nil the endpoint
	// answers with a single error event.
	Orchestrator Researcher

	// Memory backs /v1/memory/search and the MCP memory_recall tool.
	Memory apisearch.Memory
}
