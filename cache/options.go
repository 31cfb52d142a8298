package cache

// Tier identifies which layer served a hit or lost an entry.
type Tier int

const (
	// TierLocal is the owner-local, direct-mapped tier of one instance.
	TierLocal Tier = iota
	// TierShared is the process-wide tier shared by every instance of a pool.
	TierShared
)

// String returns a stable label value for the tier.
func (t Tier) String() string {
	switch t {
	case TierLocal:
		return "local"
	case TierShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Metrics exposes cache-level observability hooks.
// Counts arrive in batches: instances count privately and hand their
// totals over on Release, so hooks are never called from the lookup path
// of a pooled instance. A NoopMetrics implementation is used by default.
type Metrics interface {
	Hits(tier Tier, n uint64)
	Misses(n uint64)
	Evictions(tier Tier, n uint64)
}

// Options configures a pool. Zero values are safe; defaults are applied
// by NewStringPool / NewKeyedPool:
//   - nil Metrics => NoopMetrics
//
// Table sizes are fixed and deliberately not configurable.
type Options struct {
	// Metrics receives hit/miss/eviction counts for the pool.
	Metrics Metrics
}

func (o Options) withDefaults() Options {
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	return o
}
