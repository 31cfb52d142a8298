package cache

import (
	"fmt"
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/textcache/internal/util"
)

// Many goroutines intern from a key set far larger than the buckets it is
// squeezed into, so shared slots are overwritten constantly while being
// read. No result may ever differ from its input.
// Should pass under `-race` without detector reports.
func TestRace_InternUnderEviction(t *testing.T) {
	p := newStringPool(t)
	ks := keys("ident_", 4096)

	// Fold every hash into 256 seeds: ~16 keys per bucket slot.
	squeeze := func(s string) int32 { return util.HashString(s) & 0xFF }

	workers := 4 * runtime.GOMAXPROCS(0)
	const rounds = 20_000

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w) * 9973))
			tbl := p.Acquire()
			defer func() { tbl.Release() }()
			for i := 0; i < rounds; i++ {
				k := ks[r.Intn(len(ks))]
				var got string
				if i%2 == 0 {
					got = intern(tbl, k, squeeze(k))
				} else {
					got = intern(tbl, []byte(k), squeeze(k))
				}
				if got != k {
					return fmt.Errorf("interned %q, got %q", k, got)
				}
				// Hand tables around now and then, as a parser would
				// between files.
				if i%1000 == 999 {
					tbl.Release()
					tbl = p.Acquire()
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	st := p.Stats()
	require.NotZero(t, st.SharedEvictions, "workload must force evictions")

	tbl := p.Acquire()
	defer tbl.Release()
	for _, k := range ks {
		require.Equal(t, k, tbl.InternString(k))
		require.Equal(t, k, intern(tbl, k, squeeze(k)))
	}
}

// Concurrent readers and writers of one keyed pool never see a value that
// belongs to a different key.
func TestRace_KeyedNoCrossContamination(t *testing.T) {
	p := newKeyedPool[int](t)
	ks := keys("k", 2048)
	squeeze := func(s string) int32 { return util.HashString(s) & 0x3F }

	workers := 4 * runtime.GOMAXPROCS(0)
	const rounds = 20_000

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w) + 1))
			c := p.Acquire()
			defer c.Release()
			for i := 0; i < rounds; i++ {
				idx := r.Intn(len(ks))
				k := ks[idx]
				h := squeeze(k)
				if v, ok := c.FindString(k, h); ok {
					if v != idx {
						return fmt.Errorf("key %q: got value of %q", k, ks[v])
					}
					continue
				}
				if key := c.InsertString(k, h, idx); key != k {
					return fmt.Errorf("key %q canonicalized to %q", k, key)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.NotZero(t, p.Stats().SharedEvictions)
}

// The unowned ASCII path races with pooled tables on one shared tier.
func TestRace_InternUTF8WithTables(t *testing.T) {
	p := newStringPool(t)
	ks := keys("Meta.", 1024)

	var g errgroup.Group
	for w := 0; w < 2*runtime.GOMAXPROCS(0); w++ {
		w := w
		g.Go(func() error {
			tbl := p.Acquire()
			defer tbl.Release()
			for i := 0; i < 5_000; i++ {
				k := ks[(i*7+w)%len(ks)]
				var got string
				if (i+w)%2 == 0 {
					got = p.InternUTF8([]byte(k))
				} else {
					got = tbl.InternString(k)
				}
				if got != k {
					return fmt.Errorf("interned %q, got %q", k, got)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
