package search

import (
	"context"
	"sync"
	"time"
)

// Gate spaces calls at least Interval apart. It is shared by every searcher
// that draws on the same upstream quota.
type Gate struct {
	Interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewGate returns a gate allowing one call per interval.
func NewGate(interval time.Duration) *Gate {
	return &Gate{Interval: interval}
}

// Wait blocks until the caller may proceed and reserves the following slot.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := time.Now()
	at := g.next
	if at.Before(now) {
		at = now
	}
	g.next = at.Add(g.Interval)
	g.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
