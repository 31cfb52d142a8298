package cache

import "github.com/IvanBrykalov/textcache/internal/util"

const (
	localSizeBits = 11
	localSize     = 1 << localSizeBits
)

// localSlot is either empty (e == nil) or occupied by one entry together
// with the hash it was stored under.
type localSlot[T any] struct {
	hash int32
	e    *entry[T]
}

func (s *localSlot[T]) occupied() bool { return s.e != nil }

// localTable is the owner-local tier: a direct-mapped table with one slot
// per hash residue. It has no synchronization at all; exactly one goroutine
// may use it at a time (the owner of the enclosing StringTable/KeyedCache).
type localTable[T any] struct {
	slots []localSlot[T]
	mask  int
}

// newLocalTable allocates a zeroed table; size is rounded up to a power of two.
func newLocalTable[T any](size int) *localTable[T] {
	n := size
	if !util.IsPowerOfTwo(uint64(n)) {
		n = int(util.NextPow2(uint64(n)))
	}
	return &localTable[T]{
		slots: make([]localSlot[T], n),
		mask:  n - 1,
	}
}

// localLookup returns the entry in s's slot if it holds exactly s.
// Collisions are not resolved here: any mismatch is a miss.
func localLookup[T any, S chars](l *localTable[T], s S, hash int32) *entry[T] {
	sl := &l.slots[util.LocalIndex(hash, l.mask)]
	if sl.occupied() && sl.hash == hash && textEquals(sl.e.text, s) {
		return sl.e
	}
	return nil
}

// store overwrites the slot for hash unconditionally (last write wins).
// It reports whether an entry with different text was displaced.
func (l *localTable[T]) store(hash int32, e *entry[T]) (evicted bool) {
	sl := &l.slots[util.LocalIndex(hash, l.mask)]
	evicted = sl.occupied() && sl.e.text != e.text
	sl.hash = hash
	sl.e = e
	return evicted
}
