package search

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"

	"suggest/internal/domain"
)

// Pooled runs another Searcher on a fixed-size worker pool, so a burst of
// keystrokes never has more than size backend calls in flight. Callers beyond
// that wait for a free worker.
type Pooled struct {
	next Searcher
	pool *ants.Pool
}

type pooledResult struct {
	results []domain.Suggestion
	err     error
}

// NewPooled wraps next with a pool of size workers.
func NewPooled(next Searcher, size int) (*Pooled, error) {
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create search pool: %w", err)
	}
	return &Pooled{next: next, pool: pool}, nil
}

// Search implements Searcher.
func (p *Pooled) Search(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	done := make(chan pooledResult, 1)
	err := p.pool.Submit(func() {
		if ctx.Err() != nil {
			done <- pooledResult{err: &Error{Backend: "pool", Query: query, Err: ctx.Err()}}
			return
		}
		results, err := p.next.Search(ctx, query, limit)
		done <- pooledResult{results: results, err: err}
	})
	if err != nil {
		if err == ants.ErrPoolClosed {
			err = ErrClosed
		}
		return nil, &Error{Backend: "pool", Query: query, Err: err}
	}

	select {
	case r := <-done:
		return r.results, r.err
	case <-ctx.Done():
		return nil, &Error{Backend: "pool", Query: query, Err: ctx.Err()}
	}
}

// Running returns the number of workers currently busy.
func (p *Pooled) Running() int {
	return p.pool.Running()
}

// Close releases the pool. Searches already running finish.
func (p *Pooled) Close() error {
	p.pool.Release()
	return nil
}
