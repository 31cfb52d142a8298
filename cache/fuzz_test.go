//go:build go1.18

package cache

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// Fuzz interning under arbitrary inputs, including invalid UTF-8.
// Guards against panics and checks that content is always preserved.
func FuzzStringTable_Intern(f *testing.F) {
	f.Add("")
	f.Add("a")
	f.Add("identifier")
	f.Add("αβγ")
	f.Add("emoji🙂")
	f.Add("\xff\xfe")
	f.Add(strings.Repeat("x", 1024))

	p := NewStringPool(Options{})
	kp := NewKeyedPool[int](p, Options{})

	f.Fuzz(func(t *testing.T, s string) {
		const limit = 1 << 12
		if len(s) > limit {
			s = s[:limit]
		}

		tbl := p.Acquire()
		defer tbl.Release()

		a := tbl.Intern([]byte(s))
		if a != s {
			t.Fatalf("Intern: want %q, got %q", s, a)
		}
		// The entry was just written to this table's local slot.
		if b := tbl.InternString(s); b != s || (len(s) > 0 && !identical(a, b)) {
			t.Fatalf("InternString: want identical %q, got %q", s, b)
		}

		got := p.InternUTF8([]byte(s))
		if !utf8.ValidString(got) || (utf8.ValidString(s) && got != s) {
			t.Fatalf("InternUTF8(%q) = %q", s, got)
		}

		c := kp.Acquire()
		c.InsertString(s, HashString(s), len(s))
		if v, ok := c.Find([]byte(s), Hash([]byte(s))); !ok || v != len(s) {
			t.Fatalf("keyed Find(%q) = %d, %v", s, v, ok)
		}
		c.Release()
	})
}
