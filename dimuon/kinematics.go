package dimuon

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// FourVector promotes one muon's raw kinematics to an energy-momentum
// four-vector under the given mass hypothesis. Energy is always derived
// from the momentum and the mass via E^2 = p^2 + m^2, so E >= |p| holds
// by construction.
func FourVector(mu Muon, mass float64) (fmom.PxPyPzE, error) {
	if mu.Cartesian {
		return fromCartesian(mu, mass)
	}
	return fromPolar(mu, mass)
}

func fromCartesian(mu Muon, mass float64) (fmom.PxPyPzE, error) {
	for _, c := range [...]struct {
		name string
		v    float64
	}{{"px", mu.Px}, {"py", mu.Py}, {"pz", mu.Pz}} {
		if !isFinite(c.v) {
			return fmom.PxPyPzE{}, &InvalidKinematicsError{Quantity: c.name, Value: c.v}
		}
	}

	p2 := mu.Px*mu.Px + mu.Py*mu.Py + mu.Pz*mu.Pz
	e := math.Sqrt(p2 + mass*mass)
	return fmom.NewPxPyPzE(mu.Px, mu.Py, mu.Pz, e), nil
}

func fromPolar(mu Muon, mass float64) (fmom.PxPyPzE, error) {
	if !isFinite(mu.Eta) {
		return fmom.PxPyPzE{}, &InvalidKinematicsError{Quantity: "eta", Value: mu.Eta}
	}
	if !isFinite(mu.Phi) {
		return fmom.PxPyPzE{}, &InvalidKinematicsError{Quantity: "phi", Value: mu.Phi}
	}

	pt := mu.Pt
	if pt == 0 && mu.P != 0 {
		// Only the total momentum was given: pT = p/cosh(eta).
		if mu.P < 0 || !isFinite(mu.P) {
			return fmom.PxPyPzE{}, &InvalidKinematicsError{Quantity: "p", Value: mu.P}
		}
		pt = mu.P / math.Cosh(mu.Eta)
	}
	if pt < 0 || !isFinite(pt) {
		return fmom.PxPyPzE{}, &InvalidKinematicsError{Quantity: "pt", Value: pt}
	}

	polar := fmom.NewPtEtaPhiM(pt, mu.Eta, mu.Phi, mass)
	var p4 fmom.PxPyPzE
	p4.Set(&polar)
	return p4, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
