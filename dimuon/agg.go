package dimuon

import "fmt"

// Aggregator folds the event stream into the configured distributions
// and running residual statistics. It is scoped to one pipeline run:
// edges are fixed at construction, every Result is folded exactly once,
// and memory stays proportional to the number of bins.
type Aggregator struct {
	mass  []*Distribution // filled with the reconstructed mass
	resid *Distribution   // filled with the residual

	stats   RunningStats
	events  int64
	clamped int64
	skipped int64
}

// NewAggregator registers the distributions the configuration names:
// the full linear and log-spaced mass spectra, one linear window per
// configured zoom region, and the residual histogram.
func NewAggregator(cfg Config) *Aggregator {
	agg := &Aggregator{}

	agg.mass = append(agg.mass,
		NewDistribution("mass", cfg.Mass.Bins, cfg.Mass.Range[0], cfg.Mass.Range[1]),
		NewLogDistribution("mass_log", cfg.Mass.LogBins, cfg.Mass.Range[0], cfg.Mass.Range[1]),
	)
	for _, w := range cfg.ZoomWindows {
		agg.mass = append(agg.mass, NewDistribution("mass_"+w.Name, w.Bins, w.Min, w.Max))
	}
	agg.resid = NewDistribution("residuals", cfg.Residual.Bins, cfg.Residual.Range[0], cfg.Residual.Range[1])

	return agg
}

// Fill folds one event result into every distribution and the residual
// statistics. Values outside a distribution's range are dropped from
// that distribution only; they still count here.
func (agg *Aggregator) Fill(r Result) {
	for _, d := range agg.mass {
		d.Fill(r.Mass)
	}
	agg.resid.Fill(r.Residual)
	agg.stats.Add(r.Residual)
	agg.events++
	if r.Clamped {
		agg.clamped++
	}
}

// Merge folds another aggregator built from the same Config into this
// one. Bin counts add exactly; the residual statistics merge with the
// parallel-combination formula.
func (agg *Aggregator) Merge(o *Aggregator) error {
	if len(agg.mass) != len(o.mass) {
		return fmt.Errorf("dimuon: merging aggregators with different distributions")
	}
	for i, d := range agg.mass {
		if err := d.Merge(o.mass[i]); err != nil {
			return err
		}
	}
	if err := agg.resid.Merge(o.resid); err != nil {
		return err
	}

	agg.stats.Merge(o.stats)
	agg.events += o.events
	agg.clamped += o.clamped
	agg.skipped += o.skipped
	return nil
}

// Distributions returns all registered distributions, mass spectra
// first, residuals last.
func (agg *Aggregator) Distributions() []*Distribution {
	return append(append([]*Distribution{}, agg.mass...), agg.resid)
}
