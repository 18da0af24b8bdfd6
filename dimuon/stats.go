package dimuon

import "math"

// RunningStats accumulates mean and variance online (Welford), so the
// residual stream never has to be held in memory. Merge combines two
// accumulators with the parallel-variance formula, making the fold over
// independent chunks associative.
type RunningStats struct {
	n    int64
	mean float64
	m2   float64
}

func (s *RunningStats) Add(x float64) {
	s.n++
	d := x - s.mean
	s.mean += d / float64(s.n)
	s.m2 += d * (x - s.mean)
}

func (s *RunningStats) Merge(o RunningStats) {
	if o.n == 0 {
		return
	}
	if s.n == 0 {
		*s = o
		return
	}

	n := s.n + o.n
	d := o.mean - s.mean
	s.m2 += o.m2 + d*d*float64(s.n)*float64(o.n)/float64(n)
	s.mean += d * float64(o.n) / float64(n)
	s.n = n
}

func (s *RunningStats) N() int64 {
	return s.n
}

func (s *RunningStats) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.mean
}

// Variance is the population variance.
func (s *RunningStats) Variance() float64 {
	if s.n == 0 {
		return 0
	}
	return s.m2 / float64(s.n)
}

// RMS is the population standard deviation of the accumulated values.
func (s *RunningStats) RMS() float64 {
	return math.Sqrt(s.Variance())
}
