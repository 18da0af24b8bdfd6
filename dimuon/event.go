// Package dimuon reconstructs dimuon invariant masses from per-event
// kinematic records and aggregates them into binned distributions.
//
// The pipeline is a single forward pass: a Loader pulls raw event records
// off a CSV resource, each muon is promoted to an energy-momentum
// four-vector under a fixed muon mass hypothesis, the pair is combined
// into one invariant mass and a residual against the record's reference
// mass, and an Aggregator folds the stream into histograms and running
// statistics. Peak memory is bounded by the number of histogram bins,
// never by the number of events.
package dimuon

// Event is one raw record of the input data: identifiers, two muon
// kinematic tuples, and an independently provided reference invariant
// mass in GeV. Events are never mutated after decoding.
type Event struct {
	Run int64
	ID  int64
	Mu  [2]Muon
	M   float64 // reference invariant mass (GeV)
}

// Muon carries one muon's raw kinematics in whichever representation the
// source used. Cartesian selects between the momentum-component fields
// and the momentum/angle fields.
type Muon struct {
	// Cartesian representation (GeV).
	Px, Py, Pz float64

	// Polar representation: total or transverse momentum (GeV),
	// pseudorapidity and azimuth. Pt <= 0 means only P was given.
	P, Pt    float64
	Eta, Phi float64

	Charge    int
	Cartesian bool
}
