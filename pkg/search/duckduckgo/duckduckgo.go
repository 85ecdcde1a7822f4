// Package duckduckgo implements search.Searcher by scraping the DuckDuckGo
// lite HTML page. It needs no API key.
package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/papercomputeco/researchpilot/pkg/search"
)

const (
	DefaultBaseURL = "https://lite.duckduckgo.com"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// One query per second across every instance in the process.
var defaultGate = search.NewGate(time.Second)

var (
	linkRe        = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>(.*?)</a>`)
	linkHrefFirst = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>(.*?)</a>`)
	snippetRe     = regexp.MustCompile(`(?s)<td[^>]*class=['"]result-snippet['"][^>]*>(.*?)</td>`)
)

// Config holds configuration for the DuckDuckGo provider.
type Config struct {
	MaxResults int
	BaseURL    string
	HTTPClient *http.Client

	// Gate paces requests; defaults to a process-wide one per second.
	Gate *search.Gate
}

// Searcher scrapes DuckDuckGo lite.
type Searcher struct {
	maxResults int
	baseURL    string
	client     *http.Client
	gate       *search.Gate
}

// New constructs a DuckDuckGo searcher.
func New(c Config) *Searcher {
	s := &Searcher{
		maxResults: c.MaxResults,
		baseURL:    strings.TrimRight(c.BaseURL, "/"),
		client:     c.HTTPClient,
		gate:       c.Gate,
	}
	if s.maxResults <= 0 {
		s.maxResults = search.DefaultMaxResults
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 15 * time.Second}
	}
	if s.gate == nil {
		s.gate = defaultGate
	}
	return s
}

// Search posts the query to the lite endpoint and parses the result table.
func (s *Searcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrEmptyQuery
	}

	form := url.Values{}
	form.Set("q", query)

	resp, err := search.DoWithBackoff(ctx, s.client, func() (*http.Request, error) {
		if err := s.gate.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/lite/", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: reading response: %w", err)
	}

	return search.Limit(ParseLite(string(body)), s.maxResults), nil
}

// ParseLite extracts results from the lite page: result-link anchors paired
// positionally with result-snippet cells.
func ParseLite(page string) []search.Result {
	links := linkRe.FindAllStringSubmatch(page, -1)
	if len(links) == 0 {
		links = linkHrefFirst.FindAllStringSubmatch(page, -1)
	}
	snippets := snippetRe.FindAllStringSubmatch(page, -1)

	var results []search.Result
	for i, m := range links {
		href := strings.TrimSpace(m[1])
		title := search.Sanitize(m[2])
		if href == "" || title == "" {
			continue
		}

		snippet := ""
		if i < len(snippets) {
			snippet = search.Sanitize(snippets[i][1])
		}
		results = append(results, search.Result{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: snippet,
		})
	}
	return results
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= click-tracking links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" && strings.HasPrefix(u.Path, "/l/") {
		return target
	}
	return href
}

var _ search.Searcher = (*Searcher)(nil)
