// Package inmemory provides a process-local vector.Driver using exact cosine
// similarity. Documents live only as long as the driver.
package inmemory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/papercomputeco/researchpilot/pkg/vector"
)

type entry struct {
	doc   vector.Document
	order uint64
}

// Driver is an exact, brute-force vector index.
type Driver struct {
	mu      sync.RWMutex
	entries map[string]*entry
	next    uint64
	dims    int
}

// NewDriver creates an empty in-memory driver.
func NewDriver() *Driver {
	return &Driver{entries: make(map[string]*entry)}
}

// Add stores documents. Replacing a document keeps its original position in
// insertion order.
func (d *Driver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		if d.dims == 0 {
			d.dims = len(doc.Embedding)
		}
		if len(doc.Embedding) != d.dims {
			return fmt.Errorf("%w: document %s has %d dimensions, index has %d",
				vector.ErrDimensionMismatch, doc.ID, len(doc.Embedding), d.dims)
		}

		emb := make([]float32, len(doc.Embedding))
		copy(emb, doc.Embedding)

		if e, ok := d.entries[doc.ID]; ok {
			e.doc.Embedding = emb
			continue
		}
		d.entries[doc.ID] = &entry{
			doc:   vector.Document{ID: doc.ID, Embedding: emb},
			order: d.next,
		}
		d.next++
	}
	return nil
}

// Query ranks every document by cosine similarity. Equal scores keep
// insertion order.
func (d *Driver) Query(_ context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = vector.DefaultTopK
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.entries) == 0 {
		return nil, nil
	}
	if len(embedding) != d.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			vector.ErrDimensionMismatch, len(embedding), d.dims)
	}

	type scored struct {
		result vector.QueryResult
		order  uint64
	}
	all := make([]scored, 0, len(d.entries))
	for _, e := range d.entries {
		all = append(all, scored{
			result: vector.QueryResult{Document: e.doc, Score: Cosine(embedding, e.doc.Embedding)},
			order:  e.order,
		})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].result.Score != all[j].result.Score {
			return all[i].result.Score > all[j].result.Score
		}
		return all[i].order < all[j].order
	})

	if topK > len(all) {
		topK = len(all)
	}
	results := make([]vector.QueryResult, topK)
	for i := range results {
		results[i] = all[i].result
	}
	return results, nil
}

// Delete removes documents by ID.
func (d *Driver) Delete(_ context.Context, ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range ids {
		delete(d.entries, id)
	}
	if len(d.entries) == 0 {
		d.dims = 0
	}
	return nil
}

// Len returns the number of indexed documents.
func (d *Driver) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Close is a no-op.
func (d *Driver) Close() error {
	return nil
}

// Cosine returns the cosine similarity of a and b, or 0 when either is the
// zero vector.
func Cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

var _ vector.Driver = (*Driver)(nil)
