package field

import (
	"runtime"
	"sync"
)

// parallelCutoff is the slice length below which the vector helpers stay on
// the calling goroutine; fan-out overhead dominates under it.
const parallelCutoff = 1 << 12

// AddVec returns the pointwise sum of two equal-length slices.
func AddVec(a, b []Element) []Element {
	out := make([]Element, len(a))
	parallelRange(len(a), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a[i].Add(b[i])
		}
	})
	return out
}

// MulVec returns the pointwise product of two equal-length slices.
func MulVec(a, b []Element) []Element {
	out := make([]Element, len(a))
	parallelRange(len(a), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a[i].Mul(b[i])
		}
	})
	return out
}

// ScaleVec returns a copy of xs with every entry multiplied by c.
func ScaleVec(c Element, xs []Element) []Element {
	out := make([]Element, len(xs))
	parallelRange(len(xs), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = xs[i].Mul(c)
		}
	})
	return out
}

// parallelRange splits [0, n) across the available CPUs. Each chunk writes
// only its own output slots, so no synchronization beyond the final wait is
// needed.
func parallelRange(n int, body func(lo, hi int)) {
	workers := runtime.GOMAXPROCS(0)
	if n < parallelCutoff || workers < 2 {
		body(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
