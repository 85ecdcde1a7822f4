// Package embeddingutils builds an embeddings.Embedder from configuration.
package embeddingutils

import (
	"fmt"

	"github.com/papercomputeco/researchpilot/pkg/embeddings"
	"github.com/papercomputeco/researchpilot/pkg/embeddings/hash"
	"github.com/papercomputeco/researchpilot/pkg/embeddings/ollama"
)

const (
	ProviderHash   = "hash"
	ProviderOllama = "ollama"
)

type NewEmbedderOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	Dimensions   uint
}

// NewEmbedder returns the embedder for o.ProviderType. An empty provider
// selects the offline hashing embedder.
func NewEmbedder(o *NewEmbedderOpts) (embeddings.Embedder, error) {
	switch o.ProviderType {
	case "", ProviderHash:
		return hash.NewEmbedder(hash.Config{Dimensions: o.Dimensions})
	case ProviderOllama:
		return ollama.NewEmbedder(ollama.Config{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", o.ProviderType)
	}
}
