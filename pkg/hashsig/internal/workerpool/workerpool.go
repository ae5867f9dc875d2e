// Package workerpool provides the bounded fan-out helper used by the CPU-heavy,
// data-parallel loops called out in §5 and §9: OTS key expansion and verification
// across 256 bit positions, and Merkle tree construction across its leaves. None of
// this is exposed as part of any public API; it is strictly a performance detail, per
// §9 ("Do not expose it in the public API; it is a performance detail").
package workerpool

import (
	"runtime"
	"sync"
)

// Run calls fn(i) for every i in [0, n), fanning out across a bounded number of
// goroutines, and blocks until all calls have returned. It is safe to call with n == 0.
func Run(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}

		return
	}

	var wg sync.WaitGroup

	indices := make(chan int)

	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := range indices {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		indices <- i
	}

	close(indices)

	wg.Wait()
}
