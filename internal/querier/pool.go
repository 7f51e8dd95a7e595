package querier

import "golang.org/x/sync/errgroup"

// minChunk keeps small inputs on the calling goroutine.
const minChunk = 512

// forEachChunk runs fn over contiguous [start, end) ranges covering n items
// using at most workers goroutines. Callers write results into slots indexed
// by position, so output order never depends on scheduling.
func forEachChunk(n, workers int, fn func(start, end int)) {
	if n == 0 {
		return
	}
	chunks := min(workers, (n+minChunk-1)/minChunk)
	if chunks <= 1 {
		fn(0, n)
		return
	}

	size := (n + chunks - 1) / chunks
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
