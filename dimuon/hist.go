package dimuon

import (
	"encoding/json"
	"fmt"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/floats"
)

// Distribution is one named binned histogram. Values fill the bin
// [lo, hi) that contains them; values below the first edge or at/above
// the last edge land in the underflow/overflow and are excluded from
// Counts, while still being counted by the Aggregator's event total and
// residual statistics.
type Distribution struct {
	Name string
	hist *hbook.H1D
}

// NewDistribution builds a distribution with n linear bins over [lo, hi).
func NewDistribution(name string, n int, lo, hi float64) *Distribution {
	return &Distribution{Name: name, hist: hbook.NewH1D(n, lo, hi)}
}

// NewLogDistribution builds a distribution with n log10-spaced bins over
// [lo, hi). lo must be positive.
func NewLogDistribution(name string, n int, lo, hi float64) *Distribution {
	edges := floats.LogSpan(make([]float64, n+1), lo, hi)
	return &Distribution{Name: name, hist: hbook.NewH1DFromEdges(edges)}
}

func (d *Distribution) Fill(v float64) {
	d.hist.Fill(v, 1)
}

// Hist exposes the underlying histogram for rendering.
func (d *Distribution) Hist() *hbook.H1D {
	return d.hist
}

// Edges returns the len(bins)+1 bin edges in ascending order.
func (d *Distribution) Edges() []float64 {
	bins := d.hist.Binning.Bins
	edges := make([]float64, 0, len(bins)+1)
	for _, b := range bins {
		edges = append(edges, b.XMin())
	}
	return append(edges, bins[len(bins)-1].XMax())
}

// Counts returns the per-bin entry counts, excluding under/overflow.
func (d *Distribution) Counts() []int64 {
	bins := d.hist.Binning.Bins
	counts := make([]int64, len(bins))
	for i, b := range bins {
		counts[i] = b.Entries()
	}
	return counts
}

// Merge folds another distribution with identical edges into this one.
func (d *Distribution) Merge(o *Distribution) error {
	if d.Name != o.Name || len(d.hist.Binning.Bins) != len(o.hist.Binning.Bins) {
		return fmt.Errorf("dimuon: cannot merge distribution %q into %q", o.Name, d.Name)
	}
	d.hist = hbook.AddH1D(d.hist, o.hist)
	return nil
}

// MarshalJSON emits the external contract: name, bin_edges, bin_counts.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name      string    `json:"name"`
		BinEdges  []float64 `json:"bin_edges"`
		BinCounts []int64   `json:"bin_counts"`
	}{d.Name, d.Edges(), d.Counts()})
}
