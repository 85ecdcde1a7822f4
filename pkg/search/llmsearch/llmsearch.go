// Package llmsearch implements search.Searcher by asking the completion
// model what it knows. It has no web access; use it when no search provider
// is reachable.
package llmsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/search"
)

const SystemPrompt = "You are the Research Librarian for ResearchPilot AI. " +
	"You have no internet access. For the given query, list the most relevant " +
	"facts you know as short bullet points, naming a likely source for each " +
	"when you can. Say plainly when your knowledge may be out of date."

// Searcher answers queries from model knowledge.
type Searcher struct {
	completer llm.Completer
}

// New builds a completion-backed searcher.
func New(completer llm.Completer) *Searcher {
	return &Searcher{completer: completer}
}

// Search returns the model's findings as a single result titled by the query.
func (s *Searcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrEmptyQuery
	}

	text, err := s.completer.Complete(ctx, "Query: "+query, SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("llm search: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []search.Result{{Title: query, Snippet: text}}, nil
}

var _ search.Searcher = (*Searcher)(nil)
