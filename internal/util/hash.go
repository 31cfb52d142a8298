// Package util contains internal helpers (hashing, slot indexing, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

// FNV-1a 32-bit parameters. Hashes are computed over UTF-8 code units
// (bytes) and reinterpreted as int32 at the end.
const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// Hash returns the FNV-1a hash of b.
func Hash(b []byte) int32 {
	h := uint32(fnvOffset32)
	for _, c := range b {
		h ^= uint32(c)
		h *= fnvPrime32
	}
	return int32(h)
}

// HashString returns the FNV-1a hash of s. It agrees with Hash for the
// same bytes, so a string and its []byte form always land in the same slot.
func HashString(s string) int32 {
	h := uint32(fnvOffset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return int32(h)
}

// HashASCII is Hash plus a flag reporting whether every byte of b is
// 7-bit ASCII.
func HashASCII(b []byte) (int32, bool) {
	h := uint32(fnvOffset32)
	var or byte
	for _, c := range b {
		or |= c
		h ^= uint32(c)
		h *= fnvPrime32
	}
	return int32(h), or&0x80 == 0
}
