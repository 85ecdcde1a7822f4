// Package cache memoizes search results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/redis/go-redis/v9"

	"github.com/papercomputeco/researchpilot/pkg/search"
)

const (
	// DefaultTTL is used when Config.TTL is zero.
	DefaultTTL = time.Hour

	keyPrefix = "pilot:search:"
)

// Config configures the cache.
type Config struct {
	// Provider namespaces keys so switching providers never serves stale
	// results from another one.
	Provider string
	TTL      time.Duration
}

// Searcher wraps another Searcher with a Redis read-through cache. Redis
// failures are logged and bypassed; they never fail a search.
type Searcher struct {
	next     search.Searcher
	rdb      *redis.Client
	provider string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewClient connects to the Redis URL, e.g. "redis://localhost:6379/0".
func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// New wraps next.
func New(next search.Searcher, rdb *redis.Client, c Config, logger *slog.Logger) *Searcher {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Searcher{next: next, rdb: rdb, provider: c.Provider, ttl: ttl, logger: logger}
}

// Key returns the cache key for a provider and query. Queries are compared
// case-insensitively with whitespace collapsed.
func Key(provider, query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return keyPrefix + provider + ":" + strconv.FormatUint(xxhash.ChecksumString64(normalized), 16)
}

// Search serves from Redis when possible, otherwise delegates and stores.
func (s *Searcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	key := Key(s.provider, query)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []search.Result
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			s.logger.Debug("search cache hit", "provider", s.provider, "key", key)
			return cached, nil
		}
		s.logger.Warn("discarding unreadable cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn("search cache unavailable", "error", err)
	}

	results, err := s.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return results, nil
	}
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("storing search results in cache", "error", err)
	}
	return results, nil
}

// Close closes the Redis client.
func (s *Searcher) Close() error {
	return s.rdb.Close()
}

var _ search.Searcher = (*Searcher)(nil)
