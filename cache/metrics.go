package cache

import "github.com/IvanBrykalov/textcache/internal/util"

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hits(Tier, uint64)      {}
func (NoopMetrics) Misses(uint64)          {}
func (NoopMetrics) Evictions(Tier, uint64) {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

// Stats is a point-in-time snapshot of a pool's counters. Counts held by
// instances that are currently acquired show up once they are released.
type Stats struct {
	LocalHits       uint64 `json:"local_hits"`
	SharedHits      uint64 `json:"shared_hits"`
	Misses          uint64 `json:"misses"`
	LocalEvictions  uint64 `json:"local_evictions"`
	SharedEvictions uint64 `json:"shared_evictions"`
}

// Lookups returns the total number of lookups the snapshot covers.
func (s Stats) Lookups() uint64 { return s.LocalHits + s.SharedHits + s.Misses }

// counters is the private, unsynchronized tally kept by one instance.
type counters struct {
	localHits       uint64
	sharedHits      uint64
	misses          uint64
	localEvictions  uint64
	sharedEvictions uint64
}

// poolStats holds a pool's totals. Each counter sits on its own cache line
// since releases from different goroutines update them concurrently.
type poolStats struct {
	localHits       util.PaddedAtomicUint64
	sharedHits      util.PaddedAtomicUint64
	misses          util.PaddedAtomicUint64
	localEvictions  util.PaddedAtomicUint64
	sharedEvictions util.PaddedAtomicUint64
}

// flush moves c into the pool totals and the Metrics hooks, then zeroes c.
func (s *poolStats) flush(c *counters, m Metrics) {
	if c.localHits > 0 {
		s.localHits.Add(c.localHits)
		m.Hits(TierLocal, c.localHits)
	}
	if c.sharedHits > 0 {
		s.sharedHits.Add(c.sharedHits)
		m.Hits(TierShared, c.sharedHits)
	}
	if c.misses > 0 {
		s.misses.Add(c.misses)
		m.Misses(c.misses)
	}
	if c.localEvictions > 0 {
		s.localEvictions.Add(c.localEvictions)
		m.Evictions(TierLocal, c.localEvictions)
	}
	if c.sharedEvictions > 0 {
		s.sharedEvictions.Add(c.sharedEvictions)
		m.Evictions(TierShared, c.sharedEvictions)
	}
	*c = counters{}
}

func (s *poolStats) snapshot() Stats {
	return Stats{
		LocalHits:       s.localHits.Load(),
		SharedHits:      s.sharedHits.Load(),
		Misses:          s.misses.Load(),
		LocalEvictions:  s.localEvictions.Load(),
		SharedEvictions: s.sharedEvictions.Load(),
	}
}
