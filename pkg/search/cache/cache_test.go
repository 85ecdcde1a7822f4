package cache_test

import (
	"context"
	"errors"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/papercomputeco/researchpilot/pkg/logger"
	"github.com/papercomputeco/researchpilot/pkg/search"
	"github.com/papercomputeco/researchpilot/pkg/search/cache"
)

var _ = Describe("Searcher", func() {
	var (
		mr      *miniredis.Miniredis
		rdb     *redis.Client
		calls   int
		backend search.Searcher
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		ctx = context.Background()

		calls = 0
		backend = search.SearcherFunc(func(_ context.Context, q string) ([]search.Result, error) {
			calls++
			return []search.Result{{Title: q, URL: "https://x", Snippet: "s"}}, nil
		})
	})

	AfterEach(func() {
		_ = rdb.Close()
		mr.Close()
	})

	It("normalizes queries in keys", func() {
		Expect(cache.Key("tavily", "  EV   Batteries ")).To(Equal(cache.Key("tavily", "ev batteries")))
		Expect(cache.Key("tavily", "ev batteries")).NotTo(Equal(cache.Key("brave", "ev batteries")))
	})

	It("serves repeated queries from redis", func() {
		s := cache.New(backend, rdb, cache.Config{Provider: "tavily"}, logger.Nop())

		first, err := s.Search(ctx, "ev batteries")
		Expect(err).NotTo(HaveOccurred())
		second, err := s.Search(ctx, "EV batteries")
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(calls).To(Equal(1))
		Expect(mr.TTL(cache.Key("tavily", "ev batteries"))).To(Equal(cache.DefaultTTL))
	})

	It("expires entries after the ttl", func() {
		s := cache.New(backend, rdb, cache.Config{Provider: "tavily", TTL: time.Minute}, logger.Nop())

		_, _ = s.Search(ctx, "q")
		mr.FastForward(2 * time.Minute)
		_, _ = s.Search(ctx, "q")
		Expect(calls).To(Equal(2))
	})

	It("does not cache failures", func() {
		boom := errors.New("boom")
		failing := search.SearcherFunc(func(context.Context, string) ([]search.Result, error) {
			return nil, boom
		})
		s := cache.New(failing, rdb, cache.Config{Provider: "p"}, logger.Nop())

		_, err := s.Search(ctx, "q")
		Expect(err).To(MatchError(boom))
		Expect(mr.Exists(cache.Key("p", "q"))).To(BeFalse())
	})

	It("falls through when redis is down", func() {
		s := cache.New(backend, rdb, cache.Config{Provider: "p"}, logger.Nop())
		mr.Close()

		results, err := s.Search(ctx, "q")
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(calls).To(Equal(1))
	})
})
