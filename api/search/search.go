// Package search provides the shared memory search logic used by both the
// REST endpoint and the MCP memory_recall tool.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/researchpilot/pkg/memory"
)

// DefaultTopK is used when a request asks for zero or fewer results.
const DefaultTopK = 5

// ErrQueryRequired is returned for an empty query.
var ErrQueryRequired = errors.New("query is required")

// Memory is the part of memory.Store searched here.
type Memory interface {
	Search(ctx context.Context, query string, k int) ([]memory.Match, error)
}

// SearchInput represents the input arguments for a search request.
type SearchInput struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// SearchResult is one recalled fact.
type SearchResult struct {
	Seq     int     `json:"seq"`
	Content string  `json:"content"`
	Score   float32 `json:"score"`
}

// SearchOutput represents the output of a search operation.
type SearchOutput struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// Search recalls the facts most relevant to query, best first.
func Search(ctx context.Context, query string, topK int, mem Memory, logger *slog.Logger) (*SearchOutput, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Debug("memory search", "query", query, "top_k", topK)

	matches, err := mem.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("searching memory: %w", err)
	}

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{Seq: m.Seq, Content: m.Content, Score: m.Score}
	}

	return &SearchOutput{
		Query:   query,
		Results: results,
		Count:   len(results),
	}, nil
}
