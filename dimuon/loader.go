package dimuon

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Loader pulls Events off a CSV resource one row at a time. It never
// materializes the file; Next returns io.EOF at the end of data and a
// *MalformedInputError for a structurally invalid row, leaving the
// loader usable for the following row so callers may skip-and-count.
type Loader struct {
	r      *csv.Reader
	closer io.Closer
	cols   recordIndex
	row    int64
}

// recordIndex holds resolved header positions; -1 marks an absent column.
type recordIndex struct {
	run, event, mass int
	mu               [2]muonIndex
}

type muonIndex struct {
	px, py, pz      int
	p, pt, eta, phi int
	charge          int
	cartesian       bool
}

// Open opens path and wraps it in a Loader. The file is closed by
// Loader.Close, on pipeline completion or first unrecoverable error.
func Open(path string, cols Columns) (*Loader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	l, err := NewLoader(f, cols)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.closer = f
	return l, nil
}

// NewLoader reads the header row of r and resolves the configured
// column names against it. Unknown extra columns are ignored.
func NewLoader(r io.Reader, cols Columns) (*Loader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Row: 0, Reason: "missing header row"}
	}
	if err != nil {
		return nil, &MalformedInputError{Row: 0, Reason: err.Error()}
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	at := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	idx := recordIndex{
		run:   at(cols.Run),
		event: at(cols.Event),
		mass:  at(cols.Mass),
	}
	if idx.mass < 0 {
		return nil, &MalformedInputError{Row: 0, Column: cols.Mass, Reason: "reference mass column not found"}
	}
	for i, mc := range cols.Muons {
		mi := muonIndex{
			px: at(mc.Px), py: at(mc.Py), pz: at(mc.Pz),
			p: at(mc.P), pt: at(mc.Pt), eta: at(mc.Eta), phi: at(mc.Phi),
			charge: at(mc.Charge),
		}
		mi.cartesian = mi.px >= 0 && mi.py >= 0 && mi.pz >= 0
		polar := (mi.p >= 0 || mi.pt >= 0) && mi.eta >= 0 && mi.phi >= 0
		if !mi.cartesian && !polar {
			return nil, &MalformedInputError{
				Row:    0,
				Reason: fmt.Sprintf("muon %d kinematic columns not found in header", i+1),
			}
		}
		if mi.charge < 0 {
			return nil, &MalformedInputError{Row: 0, Column: mc.Charge, Reason: "charge column not found"}
		}
		idx.mu[i] = mi
	}

	return &Loader{r: cr, cols: idx}, nil
}

// Next decodes the next data row. The returned Event is freshly
// allocated and never shared.
func (l *Loader) Next() (*Event, error) {
	rec, err := l.r.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	l.row++
	if err != nil {
		return nil, &MalformedInputError{Row: l.row, Reason: err.Error()}
	}

	ev := &Event{}
	if ev.Run, err = l.intField(rec, l.cols.run, "run"); err != nil {
		return nil, err
	}
	if ev.ID, err = l.intField(rec, l.cols.event, "event"); err != nil {
		return nil, err
	}
	if ev.M, err = l.floatField(rec, l.cols.mass, "mass"); err != nil {
		return nil, err
	}

	for i, mi := range l.cols.mu {
		mu := Muon{Cartesian: mi.cartesian}
		if mi.cartesian {
			if mu.Px, err = l.floatField(rec, mi.px, "px"); err != nil {
				return nil, err
			}
			if mu.Py, err = l.floatField(rec, mi.py, "py"); err != nil {
				return nil, err
			}
			if mu.Pz, err = l.floatField(rec, mi.pz, "pz"); err != nil {
				return nil, err
			}
		} else {
			if mi.pt >= 0 {
				if mu.Pt, err = l.floatField(rec, mi.pt, "pt"); err != nil {
					return nil, err
				}
			} else {
				if mu.P, err = l.floatField(rec, mi.p, "p"); err != nil {
					return nil, err
				}
			}
			if mu.Eta, err = l.floatField(rec, mi.eta, "eta"); err != nil {
				return nil, err
			}
			if mu.Phi, err = l.floatField(rec, mi.phi, "phi"); err != nil {
				return nil, err
			}
		}

		q, err := l.floatField(rec, mi.charge, "charge")
		if err != nil {
			return nil, err
		}
		if q != 1 && q != -1 {
			return nil, &MalformedInputError{
				Row:    l.row,
				Column: "charge",
				Reason: fmt.Sprintf("charge must be -1 or +1, got %v", q),
			}
		}
		mu.Charge = int(q)

		ev.Mu[i] = mu
	}

	return ev, nil
}

// Close releases the underlying resource, if the Loader owns one.
func (l *Loader) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *Loader) floatField(rec []string, i int, name string) (float64, error) {
	if i < 0 || i >= len(rec) {
		return 0, &MalformedInputError{Row: l.row, Column: name, Reason: "missing field"}
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return 0, &MalformedInputError{
			Row:    l.row,
			Column: name,
			Reason: fmt.Sprintf("not a number: %q", rec[i]),
		}
	}
	if !isFinite(v) {
		return 0, &MalformedInputError{Row: l.row, Column: name, Reason: "value is not finite"}
	}
	return v, nil
}

// intField tolerates an absent column since run/event identifiers are
// not needed downstream, but a present column must parse.
func (l *Loader) intField(rec []string, i int, name string) (int64, error) {
	if i < 0 {
		return 0, nil
	}
	if i >= len(rec) {
		return 0, &MalformedInputError{Row: l.row, Column: name, Reason: "missing field"}
	}
	v, err := strconv.ParseInt(rec[i], 10, 64)
	if err != nil {
		return 0, &MalformedInputError{
			Row:    l.row,
			Column: name,
			Reason: fmt.Sprintf("not an integer: %q", rec[i]),
		}
	}
	return v, nil
}
