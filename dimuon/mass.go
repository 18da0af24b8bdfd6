package dimuon

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Result is the per-event outcome: the reconstructed invariant mass, the
// provided reference mass, and their signed difference. Clamped marks
// events whose m^2 came out negative from floating-point cancellation
// near m ~ 0 and was clamped to zero; that is a degenerate case, not an
// error, and is counted by the Aggregator.
type Result struct {
	Mass     float64
	Ref      float64
	Residual float64
	Clamped  bool
}

// Combine computes the invariant mass of a muon pair and its residual
// against the reference mass. m^2 = E_tot^2 - |p_tot|^2; a negative m^2
// is clamped to zero. Non-finite sums fail with *InvalidKinematicsError.
func Combine(p1, p2 fmom.P4, ref float64) (Result, error) {
	sum := fmom.Add(p1, p2)
	if !isFinite(sum.E()) {
		return Result{}, &InvalidKinematicsError{Quantity: "E", Value: sum.E()}
	}

	m2 := sum.M2()
	if !isFinite(m2) {
		return Result{}, &InvalidKinematicsError{Quantity: "m2", Value: m2}
	}

	clamped := false
	if m2 < 0 {
		m2 = 0
		clamped = true
	}
	m := math.Sqrt(m2)

	return Result{
		Mass:     m,
		Ref:      ref,
		Residual: m - ref,
		Clamped:  clamped,
	}, nil
}

// Reconstruct runs the full per-event computation: both four-vectors
// under the mass hypothesis, then the pair combination.
func Reconstruct(ev *Event, mass float64) (Result, error) {
	p1, err := FourVector(ev.Mu[0], mass)
	if err != nil {
		return Result{}, err
	}
	p2, err := FourVector(ev.Mu[1], mass)
	if err != nil {
		return Result{}, err
	}
	return Combine(&p1, &p2, ev.M)
}
