package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/researchpilot/pkg/mission"
)

var (
	researchToolName    = "research"
	researchDescription = "Run a research mission on a topic: plan sub-queries, search the web, analyze findings, generate hypotheses from memory, and return the synthesized report."
)

// ResearchInput represents the input arguments for the research tool.
type ResearchInput struct {
	Topic string `json:"topic" jsonschema:"the research topic"`
}

// ResearchOutput is the finished mission.
type ResearchOutput struct {
	Topic  string   `json:"topic"`
	Stages []string `json:"stages"`
	Report string   `json:"report"`
}

// handleResearch runs one mission to its terminal event.
func (s *Server) handleResearch(ctx context.Context, _ *mcp.CallToolRequest, input ResearchInput) (*mcp.CallToolResult, ResearchOutput, error) {
	if input.Topic == "" {
		return errorResult("topic is required"), ResearchOutput{}, nil
	}

	s.config.Logger.Info("MCP research request", "topic", input.Topic)

	output := ResearchOutput{Topic: input.Topic, Stages: []string{}}
	for event := range s.config.Researcher.Run(ctx, input.Topic) {
		switch e := event.(type) {
		case mission.StageUpdate:
			output.Stages = append(output.Stages, e.Message)
		case mission.Failure:
			return errorResult(fmt.Sprintf("Research failed: %s", e.Message)), ResearchOutput{}, nil
		case mission.Completion:
			output.Report = e.Report
		}
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to serialize report: %v", err)), ResearchOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
