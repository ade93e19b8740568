// Package workerpool runs blocking work on a bounded set of goroutines.
package workerpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

type Pool struct {
	sem *semaphore.Weighted
}

func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Do waits for a free slot, runs fn on its own goroutine and waits for it.
// Cancelling ctx only aborts the wait for a slot: once fn starts it receives a
// context that is never cancelled and runs to completion.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire worker: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		done <- fn(context.WithoutCancel(ctx))
	}()

	return <-done
}
