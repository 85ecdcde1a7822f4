// Package vector provides the vector index contract used by semantic memory
// and its storage backends.
package vector

import "context"

// DefaultTopK is used by drivers when a query asks for zero or fewer results.
const DefaultTopK = 10

// Document is one indexed embedding.
type Document struct {
	// ID is the caller's identifier for the document. Memory uses the
	// fact's sequence number.
	ID string

	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings. A document whose ID already
	// exists replaces the stored one.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// best match first.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Delete removes documents by their IDs. Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error

	// Close releases any resources held by the driver.
	Close() error
}
