package store

import (
	"context"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// resource is the shared fetch-state container behind every store. Each
// Refetch bumps a generation counter and cancels the in-flight fetch, so
// the last issued request always wins and stale responses are discarded.
// A failed fetch keeps the previous data with the error surfaced.
type resource[T any] struct {
	mu         sync.Mutex
	state      State
	data       T
	totalCount int
	err        error
	generation uint64
	cancel     context.CancelFunc
}

type fetchFunc[T any] func(ctx context.Context) (T, int, error)

func (r *resource[T]) refetch(ctx context.Context, fetch fetchFunc[T]) error {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.generation++
	gen := r.generation
	r.state = StateLoading
	r.mu.Unlock()

	data, count, err := fetch(fetchCtx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		// A newer request was issued while this one was in flight.
		return nil
	}
	if err != nil {
		r.state = StateError
		r.err = err
		return err
	}
	r.state = StateSuccess
	r.data = data
	r.totalCount = count
	r.err = nil
	return nil
}

func (r *resource[T]) snapshot() (T, int, State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.totalCount, r.state, r.err
}

// mutate applies a local edit to already-fetched data without going back
// to the server. No-op unless a fetch has succeeded.
func (r *resource[T]) mutate(fn func(data T, count int) (T, int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateSuccess {
		return
	}
	r.data, r.totalCount = fn(r.data, r.totalCount)
}
