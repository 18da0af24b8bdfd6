package dimuon

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Run drives the pipeline sequentially: one pull loop over the loader,
// fail-fast on the first error, loader released on completion or error.
func Run(l *Loader, cfg Config) (*Summary, error) {
	defer l.Close()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	agg := NewAggregator(cfg)
	skip := skipPolicy{frac: cfg.MaxBadRowFraction}
	for {
		ev, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if err := skip.note(err); err != nil {
				return nil, err
			}
			continue
		}

		res, err := Reconstruct(ev, cfg.MuonMass)
		if err != nil {
			return nil, err
		}
		agg.Fill(res)
	}

	if err := skip.finalize(agg.events); err != nil {
		return nil, err
	}
	agg.skipped = skip.bad
	return agg.Summary()
}

// RunParallel is the optional parallel variant: one reader goroutine
// feeds independent reconstruction workers, each folding into a private
// Aggregator; the aggregators merge in worker order at the end. Bin
// counts are identical to the sequential pass; the residual RMS agrees
// within floating-point reassociation tolerance.
func RunParallel(l *Loader, cfg Config, workers int) (*Summary, error) {
	if workers <= 1 {
		return Run(l, cfg)
	}
	defer l.Close()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	events := make(chan *Event, 4*workers)
	aggs := make([]*Aggregator, workers)
	werrs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		agg := NewAggregator(cfg)
		aggs[i] = agg
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for ev := range events {
				if werrs[i] != nil {
					continue // keep draining so the reader never blocks
				}
				res, err := Reconstruct(ev, cfg.MuonMass)
				if err != nil {
					werrs[i] = err
					continue
				}
				agg.Fill(res)
			}
		}(i)
	}

	skip := skipPolicy{frac: cfg.MaxBadRowFraction}
	var readErr error
	for {
		ev, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if err := skip.note(err); err != nil {
				readErr = err
				break
			}
			continue
		}
		events <- ev
	}
	close(events)
	wg.Wait()

	if readErr != nil {
		return nil, readErr
	}
	for _, err := range werrs {
		if err != nil {
			return nil, err
		}
	}

	total := aggs[0]
	for _, agg := range aggs[1:] {
		if err := total.Merge(agg); err != nil {
			return nil, err
		}
	}
	if err := skip.finalize(total.events); err != nil {
		return nil, err
	}
	total.skipped = skip.bad
	return total.Summary()
}

// skipPolicy implements the bounded skip-and-count tolerance for
// malformed rows. frac == 0 keeps the fail-fast default; otherwise rows
// are skipped and counted, and the run fails once skips exceed frac of
// all rows read.
type skipPolicy struct {
	frac  float64
	bad   int64
	first error
}

func (p *skipPolicy) note(err error) error {
	var merr *MalformedInputError
	if !errors.As(err, &merr) {
		return err
	}
	if p.frac <= 0 {
		return err
	}
	p.bad++
	if p.first == nil {
		p.first = err
	}
	return nil
}

func (p *skipPolicy) finalize(events int64) error {
	if p.bad == 0 {
		return nil
	}
	total := events + p.bad
	if float64(p.bad) > p.frac*float64(total) {
		return fmt.Errorf("dimuon: skipped %d of %d rows, above tolerance %v: %w",
			p.bad, total, p.frac, p.first)
	}
	return nil
}
