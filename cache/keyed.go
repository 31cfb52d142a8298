package cache

// KeyedCache associates values of type T with text keys. Callers compute
// the key's hash once (Hash / HashString) and pass it to both Find and
// Insert; the same hash drives both tiers and the canonicalization of the
// key itself, so it is never recomputed.
//
// Like StringTable, a KeyedCache belongs to one goroutine at a time and is
// lossy: Find may miss a key that was inserted earlier.
type KeyedCache[T any] struct {
	local  *localTable[T]
	shared *sharedTable[T]
	pool   *KeyedPool[T]

	// strings canonicalizes keys, so two items inserted under equal keys
	// share one key string.
	strings *StringTable

	step uint32
	c    counters
}

// Find returns the item cached for chars. hash must be Hash(chars).
func (c *KeyedCache[T]) Find(chars []byte, hash int32) (T, bool) {
	return keyedFind(c, chars, hash)
}

// FindString returns the item cached for s. hash must be HashString(s).
func (c *KeyedCache[T]) FindString(s string, hash int32) (T, bool) {
	return keyedFind(c, s, hash)
}

// Insert caches item under chars and returns the canonical key string it
// was stored with. hash must be Hash(chars).
func (c *KeyedCache[T]) Insert(chars []byte, hash int32, item T) string {
	return keyedInsert(c, chars, hash, item)
}

// InsertString caches item under s and returns the canonical key string.
// hash must be HashString(s).
func (c *KeyedCache[T]) InsertString(s string, hash int32, item T) string {
	return keyedInsert(c, s, hash, item)
}

// Release returns c to the pool it came from without clearing it.
func (c *KeyedCache[T]) Release() {
	c.pool.Release(c)
}

// ---- lookup path ----

func keyedFind[T any, S chars](c *KeyedCache[T], s S, hash int32) (T, bool) {
	if e := localLookup(c.local, s, hash); e != nil {
		c.c.localHits++
		return e.item, true
	}
	if e := sharedLookup(c.shared, s, hash); e != nil {
		c.c.sharedHits++
		c.storeLocal(hash, e)
		return e.item, true
	}
	c.c.misses++
	var zero T
	return zero, false
}

func keyedInsert[T any, S chars](c *KeyedCache[T], s S, hash int32, item T) string {
	e := &entry[T]{text: intern(c.strings, s, hash), item: item}
	c.storeShared(hash, e)
	c.storeLocal(hash, e)
	return e.text
}

func (c *KeyedCache[T]) storeLocal(hash int32, e *entry[T]) {
	if c.local.store(hash, e) {
		c.c.localEvictions++
	}
}

func (c *KeyedCache[T]) storeShared(hash int32, e *entry[T]) {
	if c.shared.tryStore(hash, e) {
		return
	}
	c.shared.evict(hash, e, c.step)
	c.step++
	c.c.sharedEvictions++
}
