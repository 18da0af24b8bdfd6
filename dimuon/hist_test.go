package dimuon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribution_EdgePolicy(t *testing.T) {
	d := NewDistribution("m", 10, 0, 10)

	d.Fill(0)    // exactly the global lower edge: first bin
	d.Fill(5)    // exactly a bin lower edge: that bin
	d.Fill(4.99) // just below: previous bin
	d.Fill(10)   // exactly the global upper edge: dropped
	d.Fill(-0.1) // below range: dropped

	counts := d.Counts()
	assert.Equal(t, int64(1), counts[0])
	assert.Equal(t, int64(1), counts[4])
	assert.Equal(t, int64(1), counts[5])

	var total int64
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, int64(3), total, "out-of-range values are dropped from the distribution")
}

func TestDistribution_Edges(t *testing.T) {
	d := NewDistribution("m", 4, 0, 8)
	assert.Equal(t, []float64{0, 2, 4, 6, 8}, d.Edges())
	assert.Len(t, d.Counts(), 4)
}

func TestLogDistribution_Edges(t *testing.T) {
	d := NewLogDistribution("m_log", 4, 1, 10000)

	edges := d.Edges()
	require.Len(t, edges, 5)
	want := []float64{1, 10, 100, 1000, 10000}
	for i := range want {
		assert.InEpsilon(t, want[i], edges[i], 1e-12)
	}

	d.Fill(5)   // [1,10)
	d.Fill(500) // [100,1000)
	counts := d.Counts()
	assert.Equal(t, int64(1), counts[0])
	assert.Equal(t, int64(1), counts[2])
}

func TestDistribution_Merge(t *testing.T) {
	a := NewDistribution("m", 4, 0, 8)
	b := NewDistribution("m", 4, 0, 8)

	a.Fill(1)
	a.Fill(3)
	b.Fill(3)
	b.Fill(7)

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []int64{1, 2, 0, 1}, a.Counts())
}

func TestDistribution_MarshalJSON(t *testing.T) {
	d := NewDistribution("mass", 2, 0, 4)
	d.Fill(1)
	d.Fill(3)
	d.Fill(3.5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "mass",
		"bin_edges": [0, 2, 4],
		"bin_counts": [1, 2]
	}`, string(data))
}
