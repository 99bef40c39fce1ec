package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timing, keyed by "package.Operation".

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCounts = make(map[string]int)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("terrain.Tick")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCounts[name]++
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCounts)
	mu.Unlock()
}

// Sample is one named total of the current frame.
type Sample struct {
	Name  string        `json:"name"`
	Total time.Duration `json:"total"`
	Calls int           `json:"calls"`
}

// Snapshot returns the current frame totals sorted by descending duration.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frameTotals))
	for k, v := range frameTotals {
		out = append(out, Sample{Name: k, Total: v, Calls: frameCounts[k]})
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Name < out[j].Name
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// TopN formats the n most expensive entries of the current frame.
// Example: "terrain.Render:4.2ms, terrain.Tick:2.1ms"
func TopN(n int) string {
	samples := Snapshot()
	if n > len(samples) {
		n = len(samples)
	}
	parts := make([]string, 0, n)
	for _, s := range samples[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", s.Name, ms))
	}
	return strings.Join(parts, ", ")
}
