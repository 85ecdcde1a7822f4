// Package llmutils builds a configured llm.Completer from provider settings.
package llmutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/llm/anthropic"
	"github.com/papercomputeco/researchpilot/pkg/llm/ollama"
	"github.com/papercomputeco/researchpilot/pkg/llm/openai"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

type NewCompleterOpts struct {
	ProviderType string
	Model        string
	BaseURL      string

	// APIKey takes precedence over the provider's environment variable.
	APIKey string

	// Getenv overrides os.Getenv, mainly for tests.
	Getenv func(string) string
}

// NewCompleter resolves the API key (explicit, then environment) and builds
// the provider's client. Providers that need a key fail with
// llm.ErrMissingCredential when none is found.
func NewCompleter(o *NewCompleterOpts) (llm.Completer, error) {
	provider := strings.ToLower(o.ProviderType)
	if provider == "" {
		provider = ProviderGroq
	}

	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = ResolveAPIKeyFromEnv(provider, o.Getenv)
	}

	switch provider {
	case ProviderGroq:
		return openai.NewGroq(apiKey, o.Model, o.BaseURL)
	case ProviderOpenAI:
		return openai.New(openai.Config{
			Name:    ProviderOpenAI,
			APIKey:  apiKey,
			Model:   o.Model,
			BaseURL: o.BaseURL,
		})
	case ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			APIKey:  apiKey,
			Model:   o.Model,
			BaseURL: o.BaseURL,
		})
	case ProviderOllama:
		return ollama.New(ollama.Config{
			BaseURL: o.BaseURL,
			Model:   o.Model,
		})
	default:
		return nil, fmt.Errorf("%w: %s", llm.ErrUnsupportedProvider, o.ProviderType)
	}
}

// EnvVar returns the environment variable holding the provider's API key.
func EnvVar(provider string) string {
	switch provider {
	case ProviderGroq:
		return "GROQ_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// ResolveAPIKeyFromEnv looks up the provider's key. A nil getenv uses os.Getenv.
func ResolveAPIKeyFromEnv(provider string, getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	name := EnvVar(provider)
	if name == "" {
		return ""
	}
	return getenv(name)
}
