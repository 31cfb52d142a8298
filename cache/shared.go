package cache

import (
	"sync/atomic"

	"github.com/IvanBrykalov/textcache/internal/util"
)

const (
	sharedSizeBits = 16
	sharedSize     = 1 << sharedSizeBits

	// bucketSize is the probe depth: how many slots an entry may occupy
	// starting from its seed.
	bucketSize = 16
	bucketMask = bucketSize - 1
)

// sharedSlot is a concurrently accessed slot. The entry pointer is the
// publish signal: writers store hash first and the entry last, readers load
// the entry first and the hash after it. A reader that sees a hash from a
// different write than the entry it loaded just fails to match.
type sharedSlot[T any] struct {
	hash atomic.Int32
	e    atomic.Pointer[entry[T]]
}

// sharedTable is the process-wide tier: a fixed-size open-addressing table
// with bounded triangular probing and no locks anywhere. Lookups may miss
// entries that are being written or that were overwritten; they never
// return an entry whose text differs from the probe.
type sharedTable[T any] struct {
	slots []sharedSlot[T]
	mask  int

	// ---- hot counter for inserts without an owning instance ----
	_    util.CacheLinePad
	next util.PaddedAtomicUint32
}

// newSharedTable allocates an empty table; size is rounded up to a power of two.
func newSharedTable[T any](size int) *sharedTable[T] {
	n := size
	if !util.IsPowerOfTwo(uint64(n)) {
		n = int(util.NextPow2(uint64(n)))
	}
	return &sharedTable[T]{
		slots: make([]sharedSlot[T], n),
		mask:  n - 1,
	}
}

func (t *sharedTable[T]) seed(hash int32) int {
	return util.SharedSeed(hash, localSizeBits, t.mask)
}

// sharedLookup walks the probe sequence of hash. An empty slot ends the
// walk: inserts always fill the first empty slot, so nothing for this seed
// can live past it.
func sharedLookup[T any, S chars](t *sharedTable[T], s S, hash int32) *entry[T] {
	seed := t.seed(hash)
	for k := 0; k < bucketSize; k++ {
		sl := &t.slots[util.ProbeIndex(seed, k, t.mask)]
		e := sl.e.Load()
		if e == nil {
			return nil
		}
		if sl.hash.Load() == hash && textEquals(e.text, s) {
			return e
		}
	}
	return nil
}

// tryStore writes e into the first empty slot of hash's probe sequence.
// It returns false when all bucketSize slots are occupied.
func (t *sharedTable[T]) tryStore(hash int32, e *entry[T]) bool {
	seed := t.seed(hash)
	for k := 0; k < bucketSize; k++ {
		sl := &t.slots[util.ProbeIndex(seed, k, t.mask)]
		if sl.e.Load() == nil {
			sl.hash.Store(hash)
			sl.e.Store(e)
			return true
		}
	}
	return false
}

// evict overwrites the slot at probe step (step mod bucketSize). This is the
// only eviction rule; it knows nothing about recency or frequency.
func (t *sharedTable[T]) evict(hash int32, e *entry[T], step uint32) {
	sl := &t.slots[util.ProbeIndex(t.seed(hash), int(step&bucketMask), t.mask)]
	sl.hash.Store(hash)
	sl.e.Store(e)
}

// insertUnowned is tryStore+evict for callers with no instance of their
// own; the victim step comes from the table-wide rotating counter.
func (t *sharedTable[T]) insertUnowned(hash int32, e *entry[T]) (evicted bool) {
	if t.tryStore(hash, e) {
		return false
	}
	t.evict(hash, e, t.next.Add(1)-1)
	return true
}
