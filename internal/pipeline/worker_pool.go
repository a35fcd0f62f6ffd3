package pipeline

import (
	"context"
	"sync"
)

type Task[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Value T
	Err   error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. Results
// must be drained while tasks are still being submitted.
type WorkerPool[T any] struct {
	workers int
	tasks   chan Task[T]
	wg      sync.WaitGroup
}

func NewWorkerPool[T any](workers, buffer int) *WorkerPool[T] {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool[T]{
		workers: workers,
		tasks:   make(chan Task[T], buffer),
	}
}

// Submit queues t. It reports false when ctx ends before the task is queued.
func (p *WorkerPool[T]) Submit(ctx context.Context, t Task[T]) bool {
	if p == nil || t == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

func (p *WorkerPool[T]) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *WorkerPool[T]) Run(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T], p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					v, err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result[T]{Value: v, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
