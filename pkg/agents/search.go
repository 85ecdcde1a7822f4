package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/researchpilot/pkg/search"
)

// Search gathers raw findings for one sub-query.
type Search struct {
	searcher search.Searcher
	logger   *slog.Logger
}

// NewSearch creates a Search agent.
func NewSearch(searcher search.Searcher, l *slog.Logger) *Search {
	return &Search{searcher: searcher, logger: orNop(l)}
}

// ExecuteSearch returns the formatted findings for query.
func (s *Search) ExecuteSearch(ctx context.Context, query string) (string, error) {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("search %q: %w", query, err)
	}
	s.logger.Debug("search complete", "query", query, "results", len(results))
	return search.Format(results), nil
}
