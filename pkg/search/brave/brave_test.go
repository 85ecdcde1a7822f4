package brave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/search"
	"github.com/papercomputeco/researchpilot/pkg/search/brave"
)

var _ = Describe("Searcher", func() {
	It("requires an API key", func() {
		_, err := brave.New(brave.Config{})
		Expect(err).To(MatchError(search.ErrMissingAPIKey))
	})

	It("sends the token and maps web results", func() {
		var (
			token string
			query string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token = r.Header.Get("X-Subscription-Token")
			query = r.URL.Query().Get("q")
			_, _ = w.Write([]byte(`{"web":{"results":[{"title":"T","url":"https://t","description":"d"}]}}`))
		}))
		defer server.Close()

		s, err := brave.New(brave.Config{
			APIKey:   "brave-test-key",
			BaseURL:  server.URL,
			Interval: time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())

		results, err := s.Search(context.Background(), "solid state batteries")
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(Equal([]search.Result{{Title: "T", URL: "https://t", Snippet: "d"}}))
		Expect(token).To(Equal("brave-test-key"))
		Expect(query).To(Equal("solid state batteries"))
	})

	It("reports HTTP failures", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		s, _ := brave.New(brave.Config{APIKey: "brave-test-key-2", BaseURL: server.URL, Interval: time.Millisecond})
		_, err := s.Search(context.Background(), "q")
		Expect(err).To(MatchError("brave http 403"))
	})
})
