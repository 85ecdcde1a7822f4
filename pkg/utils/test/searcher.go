package testutils

import (
	"context"
	"sync"

	"github.com/papercomputeco/researchpilot/pkg/search"
)

// MockSearcher returns canned results per query.
type MockSearcher struct {
	// Results maps a query to its results. Unknown queries get one result
	// titled by the query.
	Results map[string][]search.Result

	// Err, when set, fails every search.
	Err error

	mu      sync.Mutex
	queries []string
}

func NewMockSearcher() *MockSearcher {
	return &MockSearcher{Results: make(map[string][]search.Result)}
}

func (m *MockSearcher) Search(_ context.Context, query string) ([]search.Result, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.Results[query]; ok {
		return r, nil
	}
	return []search.Result{{Title: query, URL: "https://example.com/" + query, Snippet: "findings for " + query}}, nil
}

// Queries returns every query searched, in order.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}
