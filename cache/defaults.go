package cache

import (
	"reflect"
	"sync"

	"github.com/IvanBrykalov/textcache/internal/util"
)

// Process-wide pools. They are created on first use and live until the
// process exits; nothing ever clears them.
var (
	defaultStrings = sync.OnceValue(func() *StringPool {
		return NewStringPool(Options{})
	})

	// keyedPools maps reflect.Type of T to *KeyedPool[T]: one shared tier
	// per value type.
	keyedPools sync.Map
)

// DefaultStringPool returns the process-wide string pool.
func DefaultStringPool() *StringPool {
	return defaultStrings()
}

// DefaultKeyedPool returns the process-wide pool for values of type T.
func DefaultKeyedPool[T any]() *KeyedPool[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if p, ok := keyedPools.Load(typ); ok {
		return p.(*KeyedPool[T])
	}
	p, _ := keyedPools.LoadOrStore(typ, NewKeyedPool[T](nil, Options{}))
	return p.(*KeyedPool[T])
}

// AcquireStringTable returns a table from the process-wide string pool.
// Call Release on it when the unit of work is done.
func AcquireStringTable() *StringTable {
	return DefaultStringPool().Acquire()
}

// AcquireKeyed returns a cache from the process-wide pool for T.
// Call Release on it when the unit of work is done.
func AcquireKeyed[T any]() *KeyedCache[T] {
	return DefaultKeyedPool[T]().Acquire()
}

// InternUTF8 is StringPool.InternUTF8 on the process-wide string pool.
func InternUTF8(b []byte) string {
	return DefaultStringPool().InternUTF8(b)
}

// Hash returns the hash KeyedCache expects for chars.
func Hash(chars []byte) int32 { return util.Hash(chars) }

// HashString returns the hash KeyedCache expects for s. It equals
// Hash([]byte(s)).
func HashString(s string) int32 { return util.HashString(s) }
