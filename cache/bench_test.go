package cache

import (
	"math/rand"
	"sync/atomic"
	"testing"
)

// benchmarkIntern interns a hot identifier set. The set fits in the local
// tier when small and spills into the shared tier when large.
func benchmarkIntern(b *testing.B, distinct int) {
	p := NewStringPool(Options{})
	ks := make([][]byte, distinct)
	for i, k := range keys("ident_", distinct) {
		ks[i] = []byte(k)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		tbl := p.Acquire()
		defer tbl.Release()
		for pb.Next() {
			tbl.Intern(ks[r.Intn(len(ks))])
		}
	})
}

func BenchmarkStringTable_Intern_256(b *testing.B)   { benchmarkIntern(b, 256) }
func BenchmarkStringTable_Intern_16384(b *testing.B) { benchmarkIntern(b, 16_384) }

// Baseline without the cache: every token allocates.
func BenchmarkStringConversion(b *testing.B) {
	ks := make([][]byte, 256)
	for i, k := range keys("ident_", len(ks)) {
		ks[i] = []byte(k)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var sink string
	for i := 0; i < b.N; i++ {
		sink = string(ks[i&255])
	}
	_ = sink
}

func BenchmarkKeyedCache_FindOrInsert(b *testing.B) {
	p := NewKeyedPool[int](NewStringPool(Options{}), Options{})
	ks := keys("sym", 4096)
	hs := make([]int32, len(ks))
	for i, k := range ks {
		hs[i] = HashString(k)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		c := p.Acquire()
		defer c.Release()
		for pb.Next() {
			i := r.Intn(len(ks))
			if _, ok := c.FindString(ks[i], hs[i]); !ok {
				c.InsertString(ks[i], hs[i], i)
			}
		}
	})
}

func BenchmarkStringPool_InternUTF8(b *testing.B) {
	p := NewStringPool(Options{})
	ks := make([][]byte, 1024)
	for i, k := range keys("System.Reflection.", len(ks)) {
		ks[i] = []byte(k)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			p.InternUTF8(ks[i&1023])
			i++
		}
	})
}
