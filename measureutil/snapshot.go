// Package measureutil collects named wall-clock measurements for the
// analysis tooling. The registry is process-wide and safe for concurrent
// recording.
package measureutil

import (
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	global = map[string][]float64{}
)

// Record appends one observation, in microseconds, under the given name.
func Record(name string, d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	global[name] = append(global[name], float64(d)/float64(time.Microsecond))
}

// Time runs fn and records its duration under the given name.
func Time(name string, fn func()) {
	start := time.Now()
	fn()
	Record(name, time.Since(start))
}

// SnapshotAndReset returns the accumulated measurement map and clears it.
func SnapshotAndReset() map[string][]float64 {
	mu.Lock()
	defer mu.Unlock()
	out := global
	global = map[string][]float64{}
	return out
}
