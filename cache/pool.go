package cache

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/IvanBrykalov/textcache/internal/util"
)

// StringPool recycles StringTables. It owns the shared tier its tables
// consult, so every table acquired from one pool sees the others' strings.
//
// Release does not clear anything: a table handed out again still holds
// the previous borrower's local entries. That is intended; a stale entry
// can only ever match the exact text it was stored for.
//
// All methods are safe for concurrent use.
type StringPool struct {
	shared *sharedTable[struct{}]
	tables sync.Pool
	opt    Options
	stats  poolStats
}

// NewStringPool creates a pool with its own, empty shared tier.
// Most programs use the process-wide DefaultStringPool instead.
func NewStringPool(opt Options) *StringPool {
	p := &StringPool{
		shared: newSharedTable[struct{}](sharedSize),
		opt:    opt.withDefaults(),
	}
	p.tables.New = func() any {
		Logger().Debug("textcache: allocating string table", "local_slots", localSize)
		return p.newTable()
	}
	Logger().Debug("textcache: string pool created",
		"shared_slots", sharedSize, "bucket_size", bucketSize)
	return p
}

func (p *StringPool) newTable() *StringTable {
	return &StringTable{
		local:  newLocalTable[struct{}](localSize),
		shared: p.shared,
		pool:   p,
	}
}

// Acquire returns a ready-to-use table, fresh or previously released.
func (p *StringPool) Acquire() *StringTable {
	return p.tables.Get().(*StringTable)
}

// Release hands t back to p. t must have been acquired from p and must not
// be used afterwards.
func (p *StringPool) Release(t *StringTable) {
	if t == nil {
		return
	}
	if t.pool != p {
		panic("textcache: StringTable released to a pool it was not acquired from")
	}
	p.stats.flush(&t.c, p.opt.Metrics)
	p.tables.Put(t)
}

// Stats returns the pool's counters, including the unowned shared paths.
func (p *StringPool) Stats() Stats {
	return p.stats.snapshot()
}

// InternUTF8 decodes UTF-8 bytes to a string using only the shared tier,
// for callers that have no table of their own (metadata readers, for
// example). Input that is entirely 7-bit ASCII is looked up and, on a
// miss, inserted. Anything else is decoded and returned without touching
// the cache. Invalid sequences decode to U+FFFD.
func (p *StringPool) InternUTF8(b []byte) string {
	hash, ascii := util.HashASCII(b)
	if !ascii {
		p.countMiss()
		return decodeUTF8(b)
	}
	if e := sharedLookup(p.shared, b, hash); e != nil {
		p.stats.sharedHits.Add(1)
		p.opt.Metrics.Hits(TierShared, 1)
		return e.text
	}
	p.countMiss()
	e := &entry[struct{}]{text: string(b)}
	if p.shared.insertUnowned(hash, e) {
		p.stats.sharedEvictions.Add(1)
		p.opt.Metrics.Evictions(TierShared, 1)
	}
	return e.text
}

// FindShared looks s up in the shared tier without inserting it.
func (p *StringPool) FindShared(s string) (string, bool) {
	if e := sharedLookup(p.shared, s, util.HashString(s)); e != nil {
		p.stats.sharedHits.Add(1)
		p.opt.Metrics.Hits(TierShared, 1)
		return e.text, true
	}
	p.countMiss()
	return "", false
}

func (p *StringPool) countMiss() {
	p.stats.misses.Add(1)
	p.opt.Metrics.Misses(1)
}

// decodeUTF8 converts b to a string, replacing each invalid byte with U+FFFD.
func decodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		// The UTF-8 decoder replaces rather than rejects, so this is not
		// expected; fall back to the runtime's own replacement.
		return string([]rune(string(b)))
	}
	return string(out)
}

// ---- keyed pool ----

// KeyedPool recycles KeyedCaches for one value type T and owns the shared
// tier for that type. Keys are canonicalized through a StringPool, so a
// key string is shared with everything else interned there.
//
// All methods are safe for concurrent use.
type KeyedPool[T any] struct {
	shared  *sharedTable[T]
	strings *StringPool
	caches  sync.Pool
	opt     Options
	stats   poolStats
}

// NewKeyedPool creates a pool with its own, empty shared tier. Keys are
// interned through sp; nil means DefaultStringPool().
func NewKeyedPool[T any](sp *StringPool, opt Options) *KeyedPool[T] {
	if sp == nil {
		sp = DefaultStringPool()
	}
	p := &KeyedPool[T]{
		shared:  newSharedTable[T](sharedSize),
		strings: sp,
		opt:     opt.withDefaults(),
	}
	p.caches.New = func() any {
		Logger().Debug("textcache: allocating keyed cache", "local_slots", localSize)
		return p.newCache()
	}
	Logger().Debug("textcache: keyed pool created",
		"shared_slots", sharedSize, "bucket_size", bucketSize)
	return p
}

func (p *KeyedPool[T]) newCache() *KeyedCache[T] {
	return &KeyedCache[T]{
		local:   newLocalTable[T](localSize),
		shared:  p.shared,
		pool:    p,
		strings: p.strings.newTable(),
	}
}

// Acquire returns a ready-to-use cache, fresh or previously released.
func (p *KeyedPool[T]) Acquire() *KeyedCache[T] {
	return p.caches.Get().(*KeyedCache[T])
}

// Release hands c back to p. c must have been acquired from p and must not
// be used afterwards. Key-interning counts go to the string pool.
func (p *KeyedPool[T]) Release(c *KeyedCache[T]) {
	if c == nil {
		return
	}
	if c.pool != p {
		panic("textcache: KeyedCache released to a pool it was not acquired from")
	}
	p.stats.flush(&c.c, p.opt.Metrics)
	p.strings.stats.flush(&c.strings.c, p.strings.opt.Metrics)
	p.caches.Put(c)
}

// Stats returns the pool's counters for item lookups.
func (p *KeyedPool[T]) Stats() Stats {
	return p.stats.snapshot()
}

// Strings returns the pool used to canonicalize keys.
func (p *KeyedPool[T]) Strings() *StringPool {
	return p.strings
}
