package llmutils_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/llm/anthropic"
	"github.com/papercomputeco/researchpilot/pkg/llm/ollama"
	"github.com/papercomputeco/researchpilot/pkg/llm/openai"
	llmutils "github.com/papercomputeco/researchpilot/pkg/llm/utils"
)

var _ = Describe("NewCompleter", func() {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	It("defaults to groq and fails without GROQ_API_KEY", func() {
		_, err := llmutils.NewCompleter(&llmutils.NewCompleterOpts{Getenv: env(nil)})
		Expect(errors.Is(err, llm.ErrMissingCredential)).To(BeTrue())
	})

	It("resolves the groq key from the environment", func() {
		c, err := llmutils.NewCompleter(&llmutils.NewCompleterOpts{
			Getenv: env(map[string]string{"GROQ_API_KEY": "gsk"}),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(BeAssignableToTypeOf(&openai.Client{}))
	})

	It("prefers an explicit key over the environment", func() {
		c, err := llmutils.NewCompleter(&llmutils.NewCompleterOpts{
			ProviderType: "anthropic",
			APIKey:       "explicit",
			Getenv:       env(nil),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(BeAssignableToTypeOf(&anthropic.Client{}))
	})

	It("builds ollama without any credential", func() {
		c, err := llmutils.NewCompleter(&llmutils.NewCompleterOpts{ProviderType: "Ollama", Getenv: env(nil)})
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(BeAssignableToTypeOf(&ollama.Client{}))
	})

	It("rejects unknown providers", func() {
		_, err := llmutils.NewCompleter(&llmutils.NewCompleterOpts{ProviderType: "bedrock"})
		Expect(errors.Is(err, llm.ErrUnsupportedProvider)).To(BeTrue())
	})

	It("maps providers to environment variables", func() {
		Expect(llmutils.EnvVar("openai")).To(Equal("OPENAI_API_KEY"))
		Expect(llmutils.EnvVar("ollama")).To(BeEmpty())
	})
})
