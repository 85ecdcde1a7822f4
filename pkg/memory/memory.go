// Package memory is the semantic memory shared by research missions.
//
// A Store keeps an append-only log of facts, the raw findings gathered while
// researching, and indexes each fact's embedding in a vector.Driver under an
// ID derived from the fact's sequence number. Every fact in the log is
// indexed; a fact whose embedding or indexing fails is never appended.
//
// Retrieval ranks facts by similarity to the query, best first, with ties
// broken by insertion order so results are deterministic.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/papercomputeco/researchpilot/pkg/embeddings"
	"github.com/papercomputeco/researchpilot/pkg/logger"
	"github.com/papercomputeco/researchpilot/pkg/vector"
	"github.com/papercomputeco/researchpilot/pkg/vector/inmemory"
)

// Fact is one immutable unit of retrievable knowledge.
type Fact struct {
	// Seq is the 0-based insertion order within the store.
	Seq int `json:"seq"`

	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}

// Match is a fact with its similarity to a query.
type Match struct {
	Fact
	Score float32 `json:"score"`
}

// Config configures a Store.
type Config struct {
	Embedder embeddings.Embedder

	// Index defaults to an in-process inmemory.Driver.
	Index vector.Driver

	// Namespace prefixes document IDs so several stores can share one
	// persistent index. Defaults to a random UUID.
	Namespace string

	Logger *slog.Logger
}

// Store is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	embedder  embeddings.Embedder
	index     vector.Driver
	namespace string
	facts     []Fact
	logger    *slog.Logger
}

// NewStore builds an empty store.
func NewStore(c Config) (*Store, error) {
	if c.Embedder == nil {
		return nil, ErrNotConfigured
	}
	s := &Store{
		embedder:  c.Embedder,
		index:     c.Index,
		namespace: c.Namespace,
		logger:    c.Logger,
	}
	if s.index == nil {
		s.index = inmemory.NewDriver()
	}
	if s.namespace == "" {
		s.namespace = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	return s, nil
}

// AddFact embeds text and appends it to the store.
func (s *Store) AddFact(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emb, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding fact: %w", err)
	}

	seq := len(s.facts)
	if err := s.index.Add(ctx, []vector.Document{{ID: s.docID(seq), Embedding: emb}}); err != nil {
		return fmt.Errorf("indexing fact %d: %w", seq, err)
	}

	s.facts = append(s.facts, Fact{Seq: seq, Content: text, Embedding: emb})
	s.logger.Debug("added fact", "seq", seq, "chars", len(text))
	return nil
}

// RetrieveRelevant returns the texts of the min(k, Len()) facts most similar
// to query. An empty store or k <= 0 yields an empty slice without embedding
// the query.
func (s *Store) RetrieveRelevant(ctx context.Context, query string, k int) ([]string, error) {
	matches, err := s.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Content
	}
	return out, nil
}

// Search is RetrieveRelevant with facts and scores.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.facts)
	if n == 0 || k <= 0 {
		return []Match{}, nil
	}

	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	// Collect every fact this store owns so ties resolve here, whatever
	// order the driver returns equal scores in. A shared index may hold
	// other stores' documents, so widen the query until it runs dry.
	var matches []Match
	for want := n; ; want *= 2 {
		results, err := s.index.Query(ctx, emb, want)
		if err != nil {
			return nil, fmt.Errorf("querying index: %w", err)
		}

		matches = make([]Match, 0, n)
		for _, r := range results {
			seq, ok := s.seqOf(r.ID)
			if !ok || seq >= n {
				continue
			}
			matches = append(matches, Match{Fact: s.facts[seq], Score: r.Score})
		}
		if len(matches) >= n || len(results) < want {
			break
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Seq < matches[j].Seq
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	s.logger.Debug("retrieved facts", "k", k, "returned", len(matches), "stored", n)
	return matches, nil
}

// Len returns the number of stored facts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.facts)
}

// Clear removes every fact from the log and the index.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.facts) == 0 {
		return nil
	}
	ids := make([]string, len(s.facts))
	for i := range s.facts {
		ids[i] = s.docID(i)
	}
	if err := s.index.Delete(ctx, ids); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	s.facts = nil
	return nil
}

func (s *Store) docID(seq int) string {
	return s.namespace + "/" + strconv.Itoa(seq)
}

func (s *Store) seqOf(docID string) (int, bool) {
	rest, ok := strings.CutPrefix(docID, s.namespace+"/")
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
