package codec

import (
	"runtime"
	"sync"
)

// BatchProcess runs fn once per item, splitting the slice across
// runtime.NumCPU() workers the same way the row-worker split divides an
// image's scanlines: each worker claims a contiguous slice of indices and
// processes them without further coordination. Unlike a per-row split,
// items here are independent whole images with no shared state between
// them; nothing inside a single Clean call uses this. Results are
// returned in the same order as items.
func BatchProcess[T any, R any](items []T, fn func(T) (R, error)) ([]R, []error) {
	n := len(items)
	results := make([]R, n)
	errs := make([]error, n)
	if n == 0 {
		return results, errs
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	perWorker := (n + workers - 1) / workers
	for wi := 0; wi < workers; wi++ {
		start := wi * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				r, err := fn(items[i])
				results[i] = r
				errs[i] = err
			}
		}(start, end)
	}
	wg.Wait()
	return results, errs
}
