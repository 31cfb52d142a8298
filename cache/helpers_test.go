package cache

import (
	"strconv"
	"sync"
	"testing"
	"unsafe"
)

// identical reports whether a and b share their backing bytes, i.e. the
// cache handed out the same string twice rather than two equal copies.
func identical(a, b string) bool {
	return len(a) == len(b) && unsafe.StringData(a) == unsafe.StringData(b)
}

// newStringPool returns an isolated pool so tests do not see each other's
// shared entries.
func newStringPool(t testing.TB) *StringPool {
	t.Helper()
	return NewStringPool(Options{})
}

// keys returns n distinct identifier-like strings.
func keys(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i)
	}
	return out
}

// recordingMetrics is a Metrics that sums everything it receives.
type recordingMetrics struct {
	mu        sync.Mutex
	hits      map[Tier]uint64
	misses    uint64
	evictions map[Tier]uint64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{hits: map[Tier]uint64{}, evictions: map[Tier]uint64{}}
}

func (m *recordingMetrics) Hits(tier Tier, n uint64) {
	m.mu.Lock()
	m.hits[tier] += n
	m.mu.Unlock()
}

func (m *recordingMetrics) Misses(n uint64) {
	m.mu.Lock()
	m.misses += n
	m.mu.Unlock()
}

func (m *recordingMetrics) Evictions(tier Tier, n uint64) {
	m.mu.Lock()
	m.evictions[tier] += n
	m.mu.Unlock()
}
