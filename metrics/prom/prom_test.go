package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/textcache/cache"
)

func TestAdapter_CountsFromPool(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "textcache", "test", prometheus.Labels{"pool": "strings"})
	p := cache.NewStringPool(cache.Options{Metrics: a})

	tbl := p.Acquire()
	tbl.InternString("x")
	tbl.InternString("x")
	tbl.InternString("y")
	tbl.Release()

	other := p.Acquire()
	other.InternString("y")
	other.Release()

	assert.Equal(t, 2.0, testutil.ToFloat64(a.misses))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.hits.WithLabelValues("local"))+testutil.ToFloat64(a.hits.WithLabelValues("shared")))

	n, err := testutil.GatherAndCount(reg, "textcache_test_misses_total", "textcache_test_hits_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 2)
}

func TestAdapter_Evictions(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "textcache", "ev", nil)

	a.Evictions(cache.TierShared, 3)
	a.Evictions(cache.TierLocal, 1)
	a.Hits(cache.TierShared, 5)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.evictions.WithLabelValues("shared")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.evictions.WithLabelValues("local")))
	assert.Equal(t, 5.0, testutil.ToFloat64(a.hits.WithLabelValues("shared")))
}

func TestAdapter_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "textcache", "dup", nil)
	assert.Panics(t, func() { New(reg, "textcache", "dup", nil) })
}
