// Package mcp exposes research missions and memory recall as MCP (Model
// Context Protocol) tools over streamable HTTP.
package mcp

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apisearch "github.com/papercomputeco/researchpilot/api/search"
	"github.com/papercomputeco/researchpilot/pkg/mission"
	"github.com/papercomputeco/researchpilot/pkg/utils"
)

// Researcher runs missions; *mission.Orchestrator satisfies it.
type Researcher interface {
	Run(ctx context.Context, topic string) iter.Seq[mission.Event]
}

type Config struct {
	// Researcher enables the research tool.
	Researcher Researcher

	// Memory enables the memory_recall tool.
	Memory apisearch.Memory

	// Noop for an empty MCP server
	Noop bool

	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates an MCP server with a tool for each configured
// dependency.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "researchpilot",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if !c.Noop {
		if c.Logger == nil {
			return nil, errors.New("logger is required")
		}
		if c.Researcher == nil && c.Memory == nil {
			return nil, errors.New("a researcher or memory is required")
		}

		if c.Researcher != nil {
			mcp.AddTool(mcpServer, &mcp.Tool{
				Name:        researchToolName,
				Description: researchDescription,
			}, s.handleResearch)
		}

		if c.Memory != nil {
			mcp.AddTool(mcpServer, &mcp.Tool{
				Name:        memoryRecallToolName,
				Description: memoryRecallDescription,
			}, s.handleMemoryRecall)
		}
	}

	s.mcpServer = mcpServer

	// Stateless streamable HTTP handler
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// errorResult is a tool result flagged as an error.
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
