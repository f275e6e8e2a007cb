// Package profiling is a lightweight per-frame CPU profiler. Passes record
// their elapsed time under a name; the viewer reports the heaviest entries
// when a frame runs long.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type entry struct {
	total time.Duration
	calls int
}

var (
	mu          sync.Mutex
	frameTotals = make(map[string]*entry)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("scene.Propagate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e, ok := frameTotals[name]
		if !ok {
			e = &entry{}
			frameTotals[name] = e
		}
		e.total += d
		e.calls++
		mu.Unlock()
	}
}

// ResetFrame clears the current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, e := range frameTotals {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked this frame.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	if e, ok := frameTotals[name]; ok {
		return e.calls
	}
	return 0
}

// TopN formats the n most expensive entries of the current frame.
// Example: "render.Traverse:4.2ms(1), texture.Load:2.1ms(3)"
func TopN(n int) string {
	type pair struct {
		name  string
		dur   time.Duration
		calls int
	}
	mu.Lock()
	list := make([]pair, 0, len(frameTotals))
	for k, e := range frameTotals {
		list = append(list, pair{name: k, dur: e.total, calls: e.calls})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.dur.Microseconds()) / 1000.0
		parts = append(parts, p.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms("+strconv.Itoa(p.calls)+")")
	}
	return strings.Join(parts, ", ")
}
