// Package search defines the web search collaborator used by the Search
// stage, and renders results into the raw findings text that the mission
// stores in memory and hands to analysis.
//
// Available providers:
//
//   - duckduckgo: free, scrapes lite.duckduckgo.com
//   - brave: requires an API key (X-Subscription-Token)
//   - tavily: requires an API key, supports basic/advanced depth
//   - llm: asks the configured completion model for findings, no web access
//
// Any provider can be wrapped by cache.Searcher to memoize results in Redis.
package search

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultMaxResults caps results per query when a provider is not told
// otherwise.
const DefaultMaxResults = 5

// NoResults is the findings text for an empty result set.
const NoResults = "No results found."

var (
	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrMissingAPIKey is returned by providers that need a key and have none.
	ErrMissingAPIKey = errors.New("search API key is missing")
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) ([]Result, error)

func (f SearcherFunc) Search(ctx context.Context, query string) ([]Result, error) {
	return f(ctx, query)
}

var policy = bluemonday.StrictPolicy()

// Sanitize strips markup from provider text, decodes entities, and collapses
// whitespace.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(policy.Sanitize(s))), " ")
}

// Format renders results as numbered findings with their source URLs.
func Format(results []Result) string {
	if len(results) == 0 {
		return NoResults
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s", i+1, Sanitize(r.Title))
		if r.URL != "" {
			b.WriteString("\nSource: ")
			b.WriteString(r.URL)
		}
		if snippet := Sanitize(r.Snippet); snippet != "" {
			b.WriteString("\n")
			b.WriteString(snippet)
		}
	}
	return b.String()
}

// Limit truncates results to max entries; max <= 0 means DefaultMaxResults.
func Limit(results []Result, max int) []Result {
	if max <= 0 {
		max = DefaultMaxResults
	}
	if len(results) > max {
		return results[:max]
	}
	return results
}
