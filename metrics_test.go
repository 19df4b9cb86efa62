package arraypool

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	p := newTestPool[byte](t, 1024, 1)
	a := p.MustAcquire(100)
	b := p.MustAcquire(100)
	require.NoError(t, p.Release(a, false))
	require.NoError(t, p.Release(b, false))
	_ = p.MustAcquire(100)
	require.NoError(t, p.Release(make([]byte, 4096), false))
	require.Error(t, p.Release(make([]byte, 123), false))
	c := p.MustAcquire(100)
	require.NoError(t, p.Release(c, false))

	collector := NewCollector("scratch", p)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(collector))

	expected := `
# HELP arraypool_dropped_full_total Releases discarded because the bucket was full.
# TYPE arraypool_dropped_full_total counter
arraypool_dropped_full_total{pool="scratch"} 1
# HELP arraypool_dropped_oversized_total Releases discarded because the array was above the class ceiling.
# TYPE arraypool_dropped_oversized_total counter
arraypool_dropped_oversized_total{pool="scratch"} 1
# HELP arraypool_hits_total Acquires served from a bucket.
# TYPE arraypool_hits_total counter
arraypool_hits_total{pool="scratch"} 1
# HELP arraypool_misses_total In-range acquires that allocated a new array.
# TYPE arraypool_misses_total counter
arraypool_misses_total{pool="scratch"} 3
# HELP arraypool_retained_arrays Arrays currently held by the pool.
# TYPE arraypool_retained_arrays gauge
arraypool_retained_arrays{pool="scratch"} 1
# HELP arraypool_returned_total Releases stored in a bucket.
# TYPE arraypool_returned_total counter
arraypool_returned_total{pool="scratch"} 2
# HELP arraypool_violations_total Releases of arrays that do not belong to the pool.
# TYPE arraypool_violations_total counter
arraypool_violations_total{pool="scratch"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"arraypool_hits_total",
		"arraypool_misses_total",
		"arraypool_returned_total",
		"arraypool_dropped_full_total",
		"arraypool_dropped_oversized_total",
		"arraypool_violations_total",
		"arraypool_retained_arrays",
	))
	assert.Equal(t, 8, testutil.CollectAndCount(collector))
}

func TestCollectorsForDistinctPools(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector("bytes", newTestPool[byte](t, 1024, 1))))
	require.NoError(t, reg.Register(NewCollector("ints", newTestPool[int](t, 1024, 1))))
}
