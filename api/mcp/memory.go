package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apisearch "github.com/papercomputeco/researchpilot/api/search"
)

var (
	memoryRecallToolName    = "memory_recall"
	memoryRecallDescription = "Recall raw research findings stored by earlier missions. Returns the facts most relevant to the query, best first, with similarity scores."
)

// MemoryRecallInput represents the input arguments for the memory_recall tool.
type MemoryRecallInput struct {
	Query string `json:"query" jsonschema:"text to find relevant stored findings for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of facts to return (default: 5)"`
}

// handleMemoryRecall processes a memory recall request via MCP.
func (s *Server) handleMemoryRecall(ctx context.Context, _ *mcp.CallToolRequest, input MemoryRecallInput) (*mcp.CallToolResult, apisearch.SearchOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), apisearch.SearchOutput{}, nil
	}

	output, err := apisearch.Search(ctx, input.Query, input.TopK, s.config.Memory, s.config.Logger)
	if err != nil {
		s.config.Logger.Error("memory recall failed", "error", err)
		return errorResult(fmt.Sprintf("Memory recall failed: %v", err)), apisearch.SearchOutput{}, nil
	}

	// Structured output is mirrored as JSON text for clients that only read
	// text content.
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to serialize results: %v", err)), apisearch.SearchOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, *output, nil
}
