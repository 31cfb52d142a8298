package cache

import "strings"

// chars is the set of character-sequence inputs the tiers can probe with.
// Both forms are indexed as UTF-8 code units (bytes).
type chars interface {
	string | []byte
}

// entry is the payload carried through both tiers. It is immutable once
// published: a slot is updated by swapping in a different *entry, never by
// mutating one in place. The string cache uses T = struct{}.
type entry[T any] struct {
	text string
	item T
}

// textEquals is the only arbiter of a hit: an exact ordinal comparison,
// length first and then byte by byte. A matching hash alone never counts.
func textEquals[S chars](text string, s S) bool {
	if len(text) != len(s) {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] != s[i] {
			return false
		}
	}
	return true
}

// materialize returns a fresh string with the content of s that does not
// alias the caller's storage. Lexers hand in sub-slices of whole files;
// keeping those alive through the cache would pin the file.
func materialize[S chars](s S) string {
	if str, ok := any(s).(string); ok {
		return strings.Clone(str)
	}
	return string(s)
}
