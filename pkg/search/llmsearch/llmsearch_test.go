package llmsearch_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/search"
	"github.com/papercomputeco/researchpilot/pkg/search/llmsearch"
)

var _ = Describe("Searcher", func() {
	It("wraps the completion as a single result", func() {
		var gotSystem, gotPrompt string
		s := llmsearch.New(llm.CompleterFunc(func(_ context.Context, prompt, system string) (string, error) {
			gotPrompt, gotSystem = prompt, system
			return "- fact one\n- fact two", nil
		}))

		results, err := s.Search(context.Background(), "fusion power")
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(Equal([]search.Result{{Title: "fusion power", Snippet: "- fact one\n- fact two"}}))
		Expect(gotPrompt).To(Equal("Query: fusion power"))
		Expect(gotSystem).To(Equal(llmsearch.SystemPrompt))
	})

	It("returns no results for a blank completion", func() {
		s := llmsearch.New(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
			return "  ", nil
		}))
		results, err := s.Search(context.Background(), "q")
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})

	It("propagates completion errors", func() {
		boom := errors.New("boom")
		s := llmsearch.New(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
			return "", boom
		}))
		_, err := s.Search(context.Background(), "q")
		Expect(err).To(MatchError(boom))
	})
})
