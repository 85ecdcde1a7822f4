package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config represents the persistent pilot configuration stored as config.toml
// in the .pilot/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	LLM         LLMConfig         `toml:"llm"`
	Search      SearchConfig      `toml:"search"`
	SearchCache SearchCacheConfig `toml:"search_cache"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Mission     MissionConfig     `toml:"mission"`
	API         APIConfig         `toml:"api"`
	Client      ClientConfig      `toml:"client"`
	Events      EventsConfig      `toml:"events"`
}

// LLMConfig selects the completion provider shared by every agent.
type LLMConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`

	// APIKey overrides the provider's environment variable.
	APIKey string `toml:"api_key,omitempty"`
}

// SearchConfig selects the web search provider.
type SearchConfig struct {
	Provider   string `toml:"provider,omitempty"`
	APIKey     string `toml:"api_key,omitempty"`
	Depth      string `toml:"depth,omitempty"`
	MaxResults int    `toml:"max_results,omitempty"`
}

// SearchCacheConfig points search result caching at a Redis server.
// An empty target disables caching.
type SearchCacheConfig struct {
	Target string `toml:"target,omitempty"`
	TTL    string `toml:"ttl,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	APIKey     string `toml:"api_key,omitempty"`
	Collection string `toml:"collection,omitempty"`
}

// MissionConfig tunes the orchestrator.
type MissionConfig struct {
	Pace    string `toml:"pace,omitempty"`
	RecallK int    `toml:"recall_k,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// pilot server (e.g. pilot research --remote). Values are full URLs.
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// EventsConfig selects where mission finished events are published.
type EventsConfig struct {
	Provider string `toml:"provider,omitempty"`
	Brokers  string `toml:"brokers,omitempty"`
	Topic    string `toml:"topic,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func intKey(name string, field func(c *Config) *int) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.Itoa(*field(c))
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value for %s: %q", name, v)
			}
			*field(c) = n
			return nil
		},
	}
}

func durationKey(name string, field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = v
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"llm.provider": stringKey(func(c *Config) *string { return &c.LLM.Provider }),
	"llm.model":    stringKey(func(c *Config) *string { return &c.LLM.Model }),
	"llm.base_url": stringKey(func(c *Config) *string { return &c.LLM.BaseURL }),
	"llm.api_key":  stringKey(func(c *Config) *string { return &c.LLM.APIKey }),

	"search.provider":    stringKey(func(c *Config) *string { return &c.Search.Provider }),
	"search.api_key":     stringKey(func(c *Config) *string { return &c.Search.APIKey }),
	"search.depth":       stringKey(func(c *Config) *string { return &c.Search.Depth }),
	"search.max_results": intKey("search.max_results", func(c *Config) *int { return &c.Search.MaxResults }),

	"search_cache.target": stringKey(func(c *Config) *string { return &c.SearchCache.Target }),
	"search_cache.ttl":    durationKey("search_cache.ttl", func(c *Config) *string { return &c.SearchCache.TTL }),

	"embedding.provider": stringKey(func(c *Config) *string { return &c.Embedding.Provider }),
	"embedding.target":   stringKey(func(c *Config) *string { return &c.Embedding.Target }),
	"embedding.model":    stringKey(func(c *Config) *string { return &c.Embedding.Model }),
	"embedding.dimensions": {
		get: func(c *Config) string {
			if c.Embedding.Dimensions == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Embedding.Dimensions), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for embedding.dimensions: %w", err)
			}
			c.Embedding.Dimensions = uint(n)
			return nil
		},
	},

	"vector_store.provider":   stringKey(func(c *Config) *string { return &c.VectorStore.Provider }),
	"vector_store.target":     stringKey(func(c *Config) *string { return &c.VectorStore.Target }),
	"vector_store.api_key":    stringKey(func(c *Config) *string { return &c.VectorStore.APIKey }),
	"vector_store.collection": stringKey(func(c *Config) *string { return &c.VectorStore.Collection }),

	"mission.pace":     durationKey("mission.pace", func(c *Config) *string { return &c.Mission.Pace }),
	"mission.recall_k": intKey("mission.recall_k", func(c *Config) *int { return &c.Mission.RecallK }),

	"api.listen":        stringKey(func(c *Config) *string { return &c.API.Listen }),
	"client.api_target": stringKey(func(c *Config) *string { return &c.Client.APITarget }),

	"events.provider": stringKey(func(c *Config) *string { return &c.Events.Provider }),
	"events.brokers":  stringKey(func(c *Config) *string { return &c.Events.Brokers }),
	"events.topic":    stringKey(func(c *Config) *string { return &c.Events.Topic }),
}

// orderedKeys lists every key in TOML section order.
var orderedKeys = []string{
	"llm.provider",
	"llm.model",
	"llm.base_url",
	"llm.api_key",
	"search.provider",
	"search.api_key",
	"search.depth",
	"search.max_results",
	"search_cache.target",
	"search_cache.ttl",
	"embedding.provider",
	"embedding.target",
	"embedding.model",
	"embedding.dimensions",
	"vector_store.provider",
	"vector_store.target",
	"vector_store.api_key",
	"vector_store.collection",
	"mission.pace",
	"mission.recall_k",
	"api.listen",
	"client.api_target",
	"events.provider",
	"events.brokers",
	"events.topic",
}

// secretKeys are masked by `pilot config list`.
var secretKeys = map[string]bool{
	"llm.api_key":          true,
	"search.api_key":       true,
	"vector_store.api_key": true,
}

// IsSecretKey reports whether key holds a credential.
func IsSecretKey(key string) bool {
	return secretKeys[key]
}
