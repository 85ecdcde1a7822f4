// Package brave implements search.Searcher with the Brave Search API.
package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/papercomputeco/researchpilot/pkg/search"
)

const DefaultBaseURL = "https://api.search.brave.com"

// Brave allows one request per second per subscription token.
var (
	gatesMu sync.Mutex
	gates   = map[string]*search.Gate{}
)

func gateFor(apiKey string, interval time.Duration) *search.Gate {
	gatesMu.Lock()
	defer gatesMu.Unlock()
	g, ok := gates[apiKey]
	if !ok {
		g = search.NewGate(interval)
		gates[apiKey] = g
	}
	return g
}

// Config holds configuration for the Brave provider.
type Config struct {
	APIKey     string
	MaxResults int
	BaseURL    string
	HTTPClient *http.Client

	// Interval between requests sharing APIKey. Defaults to one second.
	Interval time.Duration
}

// Searcher executes Brave web searches.
type Searcher struct {
	apiKey     string
	maxResults int
	baseURL    string
	client     *http.Client
	gate       *search.Gate
}

type response struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// New constructs a Brave searcher.
func New(c Config) (*Searcher, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("brave: %w", search.ErrMissingAPIKey)
	}
	interval := c.Interval
	if interval == 0 {
		interval = time.Second
	}
	s := &Searcher{
		apiKey:     c.APIKey,
		maxResults: c.MaxResults,
		baseURL:    strings.TrimRight(c.BaseURL, "/"),
		client:     c.HTTPClient,
		gate:       gateFor(c.APIKey, interval),
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

// Search executes a Brave query. Calls sharing an API key are paced through
// one gate.
func (s *Searcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(s.maxResults))
	endpoint := s.baseURL + "/res/v1/web/search?" + params.Encode()

	resp, err := search.DoWithBackoff(ctx, s.client, func() (*http.Request, error) {
		if err := s.gate.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", s.apiKey)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("brave: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave http %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("brave: decoding response: %w", err)
	}

	results := make([]search.Result, 0, len(out.Web.Results))
	for _, r := range out.Web.Results {
		results = append(results, search.Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return search.Limit(results, s.maxResults), nil
}

var _ search.Searcher = (*Searcher)(nil)
