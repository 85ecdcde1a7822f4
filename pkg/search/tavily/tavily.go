// Package tavily implements search.Searcher with the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/researchpilot/pkg/search"
)

const DefaultBaseURL = "https://api.tavily.com"

// Config holds configuration for the Tavily provider.
type Config struct {
	APIKey string

	// Depth is "basic" (default) or "advanced".
	Depth string

	MaxResults int
	BaseURL    string
	HTTPClient *http.Client
}

// Searcher calls the Tavily search API.
type Searcher struct {
	apiKey     string
	depth      string
	maxResults int
	baseURL    string
	client     *http.Client
}

type request struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type response struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// New constructs a Tavily searcher.
func New(c Config) (*Searcher, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("tavily: %w", search.ErrMissingAPIKey)
	}
	s := &Searcher{
		apiKey:     c.APIKey,
		depth:      c.Depth,
		maxResults: c.MaxResults,
		baseURL:    strings.TrimRight(c.BaseURL, "/"),
		client:     c.HTTPClient,
	}
	if s.depth == "" {
		s.depth = "basic"
	}
	if s.maxResults <= 0 {
		s.maxResults = search.DefaultMaxResults
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 10 * time.Second}
	}
	return s, nil
}

// Search posts a query to Tavily.
func (s *Searcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrEmptyQuery
	}

	payload, err := json.Marshal(request{Query: query, SearchDepth: s.depth, MaxResults: s.maxResults})
	if err != nil {
		return nil, fmt.Errorf("tavily: marshaling request: %w", err)
	}

	resp, err := search.DoWithBackoff(ctx, s.client, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tavily: decoding response: %w", err)
	}

	results := make([]search.Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, search.Result{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	return search.Limit(results, s.maxResults), nil
}

var _ search.Searcher = (*Searcher)(nil)
