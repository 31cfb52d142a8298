// Package cache provides lossy, concurrent hash-consing caches for text:
// StringTable interns character sequences so that repeated identifiers and
// keywords share one string, and KeyedCache[T] attaches arbitrary values to
// the same canonical key strings.
//
// Design
//
//   - Two tiers: every instance has a small owner-local table (2048 slots,
//     direct-mapped, no synchronization) in front of a shared table
//     (65536 slots) that all instances of a pool consult. A lookup tries the
//     local slot, then the shared bucket; a shared hit is copied into the
//     local slot; a full miss builds the string and stores it in both.
//
//   - Shared tier: open addressing with a 16-step triangular probe
//     (seed, seed+1, seed+3, seed+6, ...). When all 16 slots are taken, one
//     of them is overwritten, chosen by a rotating counter. There is no
//     deletion, no resizing and no recency tracking.
//
//   - Concurrency: the shared tier uses no locks. Writers store the hash and
//     then publish the entry pointer atomically; readers load the pointer
//     first. A hit always re-checks the full text, so races and torn slots
//     turn into misses, never into wrong answers.
//
//   - Lossiness: any entry may disappear at any time. Callers must treat a
//     miss as "build it yourself", and must not rely on equal inputs giving
//     identical strings, only equal ones.
//
//   - Pooling: instances come from a StringPool or KeyedPool and go back on
//     Release without being cleared. Process-wide pools are created lazily
//     (DefaultStringPool, DefaultKeyedPool), one per value type.
//
//   - Metrics: instances count hits, misses and evictions privately and hand
//     the totals to Options.Metrics on Release. Pool.Stats returns a
//     snapshot. The metrics/prom package exports them to Prometheus.
//
// Basic usage
//
//	t := cache.AcquireStringTable()
//	defer t.Release()
//	a := t.Intern([]byte("identifier"))
//	b := t.InternString("identifier") // usually the same string as a
//
// Keyed values
//
//	kinds := cache.AcquireKeyed[TokenKind]()
//	defer kinds.Release()
//	h := cache.Hash(word)
//	if k, ok := kinds.Find(word, h); ok {
//	    return k
//	}
//	k := classify(word)
//	kinds.Insert(word, h, k)
//
// Decoding metadata without an instance
//
//	name := cache.InternUTF8(raw) // cached only when raw is 7-bit ASCII
//
// Thread-safety
//
// Pools and package-level functions are safe for concurrent use. A
// StringTable or KeyedCache must be used by one goroutine at a time.
package cache
