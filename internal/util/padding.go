package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a reasonable default for most modern CPUs.
// std has runtime/internal/sys.CacheLineSize but it's unexported.
const CacheLineSize = 64

// CacheLinePad separates hot fields into distinct cache lines.
type CacheLinePad struct{ _ [CacheLineSize]byte }

// PaddedAtomicUint32 is an atomic uint32 padded to exactly one cache line.
// Used for the shared tier's rotating eviction counter, which every
// goroutine on the unowned insert path bumps.
type PaddedAtomicUint32 struct {
	atomic.Uint32
	_ [CacheLineSize - 4]byte
}

// PaddedAtomicUint64 is an atomic uint64 padded to one cache line.
// Use when many goroutines update different counters to avoid false sharing.
type PaddedAtomicUint64 struct {
	atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// ---- Compile-time size checks (must be exactly one cache line) ----

var (
	_ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicUint32{}))]byte
	_ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicUint64{}))]byte
)
