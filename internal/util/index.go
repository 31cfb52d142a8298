package util

// LocalIndex maps a hash to a slot of a direct-mapped table.
// mask must be size-1 for a power-of-two size.
func LocalIndex(hash int32, mask int) int {
	return int(uint32(hash)) & mask
}

// SharedSeed maps a hash to the first probe position of a shared table.
// The upper bits are folded in (shifted by localBits) so that entries that
// collide in a direct-mapped table of 1<<localBits slots spread out here.
func SharedSeed(hash int32, localBits uint, mask int) int {
	h := uint32(hash)
	return int(h^(h>>localBits)) & mask
}

// ProbeIndex returns the slot visited at probe step k (k >= 0) starting
// from seed: seed + k*(k+1)/2, wrapped to the table size.
func ProbeIndex(seed, k, mask int) int {
	return (seed + k*(k+1)/2) & mask
}
