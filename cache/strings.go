package cache

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/IvanBrykalov/textcache/internal/util"
)

// StringTable interns character sequences: every call returns a string
// equal to its input, reusing a previously returned string when one is
// still cached.
//
// A StringTable is owned by one goroutine at a time. Obtain one from a
// StringPool (or AcquireStringTable), use it for one unit of work such as
// lexing a file, and Release it. Using it from two goroutines at once is a
// caller error and is not detected.
//
// Equal inputs usually yield the identical string, but that is best
// effort: eviction (including by concurrent users of the shared tier) can
// produce distinct strings with equal content.
type StringTable struct {
	local  *localTable[struct{}]
	shared *sharedTable[struct{}]
	pool   *StringPool

	// step picks the victim when a shared bucket is full.
	step uint32
	// scratch holds the UTF-8 encoding of rune inputs.
	scratch []byte

	c counters
}

// Ensure StringTable implements the Interner interface at compile time.
var _ Interner = (*StringTable)(nil)

// Intern returns the canonical string for b. The result never aliases b.
func (t *StringTable) Intern(b []byte) string {
	return intern(t, b, util.Hash(b))
}

// InternRange interns b[start:start+n]. It panics like slicing when the
// range is out of bounds.
func (t *StringTable) InternRange(b []byte, start, n int) string {
	return t.Intern(b[start : start+n])
}

// InternString returns the canonical string for s. On a miss the stored
// string is a copy, so s may be a substring of a much larger buffer.
func (t *StringTable) InternString(s string) string {
	return intern(t, s, util.HashString(s))
}

// InternRune returns the canonical one-character string for r. Invalid
// runes are interned as U+FFFD, matching string(r).
func (t *StringTable) InternRune(r rune) string {
	t.scratch = utf8.AppendRune(t.scratch[:0], r)
	return t.Intern(t.scratch)
}

// InternRunes returns the canonical string for the UTF-8 encoding of rs.
func (t *StringTable) InternRunes(rs []rune) string {
	buf := t.scratch[:0]
	for _, r := range rs {
		buf = utf8.AppendRune(buf, r)
	}
	t.scratch = buf
	return t.Intern(buf)
}

// InternBuffer interns the unread portion of buf without consuming it.
func (t *StringTable) InternBuffer(buf *bytes.Buffer) string {
	return t.Intern(buf.Bytes())
}

// InternBuilder interns the current content of sb.
func (t *StringTable) InternBuilder(sb *strings.Builder) string {
	return t.InternString(sb.String())
}

// Release returns t to the pool it came from. Its tables are kept as they
// are; the next borrower may be served from them.
func (t *StringTable) Release() {
	t.pool.Release(t)
}

// ---- lookup path ----

// intern runs the two-tier lookup for s under hash and, on a full miss,
// materializes s and publishes it shared-first, then locally. hash must be
// the FNV-1a hash of s (util.Hash / util.HashString); a wrong hash cannot
// produce a wrong string, only misses.
func intern[S chars](t *StringTable, s S, hash int32) string {
	if e := localLookup(t.local, s, hash); e != nil {
		t.c.localHits++
		return e.text
	}
	if e := sharedLookup(t.shared, s, hash); e != nil {
		t.c.sharedHits++
		t.storeLocal(hash, e)
		return e.text
	}

	t.c.misses++
	e := &entry[struct{}]{text: materialize(s)}
	t.storeShared(hash, e)
	t.storeLocal(hash, e)
	return e.text
}

func (t *StringTable) storeLocal(hash int32, e *entry[struct{}]) {
	if t.local.store(hash, e) {
		t.c.localEvictions++
	}
}

func (t *StringTable) storeShared(hash int32, e *entry[struct{}]) {
	if t.shared.tryStore(hash, e) {
		return
	}
	t.shared.evict(hash, e, t.step)
	t.step++
	t.c.sharedEvictions++
}
