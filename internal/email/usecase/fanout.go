package usecase

import (
	"context"
	"log"
	"sync"
)

// DefaultWorkers is the per-request concurrency used when none is configured.
const DefaultWorkers = 3

type fanOutResult[T any] struct {
	value T
	err   error
	done  bool
}

// fanOut runs fn for every id on at most workers goroutines. Results come
// back in the order of ids; ids whose fn failed are dropped and logged.
// If ctx ends before all work finished, fanOut returns ctx.Err() and no
// results.
func fanOut[T any](ctx context.Context, tag string, workers int, ids []string, fn func(ctx context.Context, id string) (T, error)) ([]T, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]fanOutResult[T], len(ids))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

launch:
	for i, id := range ids {
		select {
		case semaphore <- struct{}{}: // Acquire
		case <-ctx.Done():
			break launch
		}

		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			value, err := fn(ctx, id)
			results[i] = fanOutResult[T]{value: value, err: err, done: true}
		}(i, id)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	for i, r := range results {
		if r.err != nil {
			log.Printf("[%s] Skipping message %s: %v", tag, ids[i], r.err)
			continue
		}
		if r.done {
			out = append(out, r.value)
		}
	}
	return out, nil
}
