// Package searchutils builds a search.Searcher from configuration.
package searchutils

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/search"
	"github.com/papercomputeco/researchpilot/pkg/search/brave"
	"github.com/papercomputeco/researchpilot/pkg/search/cache"
	"github.com/papercomputeco/researchpilot/pkg/search/duckduckgo"
	"github.com/papercomputeco/researchpilot/pkg/search/llmsearch"
	"github.com/papercomputeco/researchpilot/pkg/search/tavily"
)

const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderBrave      = "brave"
	ProviderTavily     = "tavily"
	ProviderLLM        = "llm"
)

type NewSearcherOpts struct {
	ProviderType string
	APIKey       string
	Depth        string
	MaxResults   int

	// Completer backs the llm provider.
	Completer llm.Completer

	// CacheTarget is a redis URL; empty disables caching.
	CacheTarget string
	CacheTTL    time.Duration

	Logger *slog.Logger
}

// NewSearcher returns the configured provider, wrapped in the Redis cache
// when CacheTarget is set. An empty provider selects DuckDuckGo.
func NewSearcher(o *NewSearcherOpts) (search.Searcher, error) {
	provider := o.ProviderType
	if provider == "" {
		provider = ProviderDuckDuckGo
	}

	var (
		s   search.Searcher
		err error
	)
	switch provider {
	case ProviderDuckDuckGo:
		s = duckduckgo.New(duckduckgo.Config{MaxResults: o.MaxResults})
	case ProviderBrave:
		s, err = brave.New(brave.Config{APIKey: o.APIKey, MaxResults: o.MaxResults})
	case ProviderTavily:
		s, err = tavily.New(tavily.Config{APIKey: o.APIKey, Depth: o.Depth, MaxResults: o.MaxResults})
	case ProviderLLM:
		if o.Completer == nil {
			return nil, fmt.Errorf("search provider %s requires a completer", provider)
		}
		s = llmsearch.New(o.Completer)
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	if o.CacheTarget == "" {
		return s, nil
	}
	rdb, err := cache.NewClient(o.CacheTarget)
	if err != nil {
		return nil, fmt.Errorf("parsing search cache target: %w", err)
	}
	return cache.New(s, rdb, cache.Config{Provider: provider, TTL: o.CacheTTL}, o.Logger), nil
}
