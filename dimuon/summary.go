package dimuon

// Summary is the sole artifact crossing the pipeline's output boundary:
// scalar statistics plus the finalized distributions. It is immutable
// once emitted; the JSON field names are the external contract.
type Summary struct {
	EventCount    int64           `json:"event_count"`
	SkippedRows   int64           `json:"skipped_rows"`
	ClampedEvents int64           `json:"clamped_events"`
	ResidualMean  float64         `json:"residual_mean"`
	ResidualRMS   float64         `json:"residual_rms"`
	Distributions []*Distribution `json:"distributions"`
}

// Summary finalizes the aggregation. A run that processed zero events
// fails with *EmptyDatasetError rather than emitting an empty summary.
func (agg *Aggregator) Summary() (*Summary, error) {
	if agg.events == 0 {
		return nil, &EmptyDatasetError{}
	}

	return &Summary{
		EventCount:    agg.events,
		SkippedRows:   agg.skipped,
		ClampedEvents: agg.clamped,
		ResidualMean:  agg.stats.Mean(),
		ResidualRMS:   agg.stats.RMS(),
		Distributions: agg.Distributions(),
	}, nil
}

// Distribution returns the named finalized distribution, or nil.
func (s *Summary) Distribution(name string) *Distribution {
	for _, d := range s.Distributions {
		if d.Name == name {
			return d
		}
	}
	return nil
}
