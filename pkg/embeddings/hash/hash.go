// Package hash implements a deterministic, offline embeddings.Embedder using
// signed feature hashing over lowercased word tokens and their bigrams.
//
// It needs no model server, which makes it the default for local runs and
// tests. Similarity between two vectors approximates lexical overlap, not
// meaning.
package hash

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/OneOfOne/xxhash"

	"github.com/papercomputeco/researchpilot/pkg/embeddings"
)

// DefaultDimensions is used when Config.Dimensions is zero.
const DefaultDimensions = 256

// Config holds configuration for the hashing embedder.
type Config struct {
	Dimensions uint
}

// Embedder maps text into a fixed-width, L2-normalized vector.
type Embedder struct {
	dimensions uint
}

// NewEmbedder creates a hashing embedder.
func NewEmbedder(c Config) (*Embedder, error) {
	dims := c.Dimensions
	if dims == 0 {
		dims = DefaultDimensions
	}
	if dims > 1<<16 {
		return nil, errors.New("hash embedder dimensions must not exceed 65536")
	}
	return &Embedder{dimensions: dims}, nil
}

// Dimensions returns the vector width.
func (e *Embedder) Dimensions() uint {
	return e.dimensions
}

// Embed converts text into its hashed feature vector. Empty text yields the
// zero vector.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimensions)

	tokens := tokenize(text)
	for i, tok := range tokens {
		e.addFeature(vec, tok, 1)
		if i > 0 {
			e.addFeature(vec, tokens[i-1]+" "+tok, 0.5)
		}
	}

	normalize(vec)
	return vec, nil
}

// Close is a no-op.
func (e *Embedder) Close() error {
	return nil
}

func (e *Embedder) addFeature(vec []float32, feature string, weight float32) {
	h := xxhash.ChecksumString64(feature)
	idx := h % uint64(e.dimensions)
	// The top bit picks the sign so colliding features tend to cancel.
	if h>>63 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

var _ embeddings.Embedder = (*Embedder)(nil)
