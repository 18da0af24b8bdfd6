package dimuon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MuonMass is the muon rest mass in GeV, used as the fixed mass
// hypothesis when reconstructing four-vectors.
const MuonMass = 0.1056583745

// Config is the recognized option surface of the pipeline. It is usually
// parsed from a YAML file; zero fields fall back to DefaultConfig values
// only when the whole Config comes from DefaultConfig.
type Config struct {
	MuonMass float64 `yaml:"muon_mass_gev"`

	Mass        MassBinning `yaml:"mass"`
	ZoomWindows []Window    `yaml:"zoom_windows"`
	Residual    Binning     `yaml:"residual"`

	Columns Columns `yaml:"columns"`

	// MaxBadRowFraction > 0 enables skip-and-count tolerance for
	// malformed rows: the run fails once skipped rows exceed this
	// fraction of all rows read. 0 means fail on the first bad row.
	MaxBadRowFraction float64 `yaml:"max_bad_row_fraction"`
}

// MassBinning describes the full-range mass histograms: a linear one with
// Bins bins and a log10-spaced one with LogBins bins over the same range.
type MassBinning struct {
	Range   [2]float64 `yaml:"range"`
	Bins    int        `yaml:"bins"`
	LogBins int        `yaml:"log_bins"`
}

// Binning describes one linear histogram range.
type Binning struct {
	Range [2]float64 `yaml:"range"`
	Bins  int        `yaml:"bins"`
}

// Window is one zoomed mass region around a known resonance.
type Window struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Bins int     `yaml:"bins"`
}

// Columns maps physical quantities to CSV header names. A muon may be
// described by Cartesian momentum components or by momentum plus angles;
// when both sets resolve against the header, Cartesian wins. Empty names
// mark quantities the source does not provide.
type Columns struct {
	Run   string        `yaml:"run"`
	Event string        `yaml:"event"`
	Mass  string        `yaml:"mass"`
	Muons [2]MuonColumns `yaml:"muons"`
}

type MuonColumns struct {
	E  string `yaml:"e"`
	Px string `yaml:"px"`
	Py string `yaml:"py"`
	Pz string `yaml:"pz"`

	P   string `yaml:"p"`
	Pt  string `yaml:"pt"`
	Eta string `yaml:"eta"`
	Phi string `yaml:"phi"`

	Charge string `yaml:"charge"`
}

// DefaultConfig targets the CMS open-data dimuon CSV layout, with zoom
// windows at the J/psi, Upsilon and Z resonances.
func DefaultConfig() Config {
	return Config{
		MuonMass: MuonMass,
		Mass: MassBinning{
			Range:   [2]float64{0.3, 120},
			Bins:    300,
			LogBins: 300,
		},
		ZoomWindows: []Window{
			{Name: "jpsi", Min: 2.9, Max: 3.3, Bins: 80},
			{Name: "upsilon", Min: 9.0, Max: 10.0, Bins: 80},
			{Name: "z", Min: 80, Max: 100, Bins: 80},
		},
		Residual: Binning{
			Range: [2]float64{-0.05, 0.05},
			Bins:  200,
		},
		Columns: Columns{
			Run:   "Run",
			Event: "Event",
			Mass:  "M",
			Muons: [2]MuonColumns{
				{E: "E1", Px: "px1", Py: "py1", Pz: "pz1", Pt: "pt1", Eta: "eta1", Phi: "phi1", Charge: "Q1"},
				{E: "E2", Px: "px2", Py: "py2", Pz: "pz2", Pt: "pt2", Eta: "eta2", Phi: "phi2", Charge: "Q2"},
			},
		},
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("dimuon: parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration before aggregation starts; bin edges
// are immutable afterwards.
func (c Config) Validate() error {
	if c.MuonMass <= 0 {
		return fmt.Errorf("dimuon: muon_mass_gev must be positive, got %v", c.MuonMass)
	}
	if err := validRange("mass", c.Mass.Range, c.Mass.Bins); err != nil {
		return err
	}
	if c.Mass.LogBins < 1 {
		return fmt.Errorf("dimuon: mass.log_bins must be at least 1, got %d", c.Mass.LogBins)
	}
	if c.Mass.Range[0] <= 0 {
		return fmt.Errorf("dimuon: mass.range must be positive for log binning, got min %v", c.Mass.Range[0])
	}
	for _, w := range c.ZoomWindows {
		if w.Name == "" {
			return fmt.Errorf("dimuon: zoom window without a name")
		}
		if err := validRange("zoom window "+w.Name, [2]float64{w.Min, w.Max}, w.Bins); err != nil {
			return err
		}
	}
	if err := validRange("residual", c.Residual.Range, c.Residual.Bins); err != nil {
		return err
	}
	if c.MaxBadRowFraction < 0 || c.MaxBadRowFraction >= 1 {
		return fmt.Errorf("dimuon: max_bad_row_fraction must be in [0,1), got %v", c.MaxBadRowFraction)
	}
	if c.Columns.Mass == "" {
		return fmt.Errorf("dimuon: columns.mass is required")
	}
	for i, mu := range c.Columns.Muons {
		cartesian := mu.Px != "" && mu.Py != "" && mu.Pz != ""
		polar := (mu.P != "" || mu.Pt != "") && mu.Eta != "" && mu.Phi != ""
		if !cartesian && !polar {
			return fmt.Errorf("dimuon: muon %d columns must name px/py/pz or (p or pt)/eta/phi", i+1)
		}
		if mu.Charge == "" {
			return fmt.Errorf("dimuon: muon %d charge column is required", i+1)
		}
	}
	return nil
}

func validRange(name string, r [2]float64, bins int) error {
	if r[1] <= r[0] {
		return fmt.Errorf("dimuon: %s range must have min < max, got [%v, %v]", name, r[0], r[1])
	}
	if bins < 1 {
		return fmt.Errorf("dimuon: %s bins must be at least 1, got %d", name, bins)
	}
	return nil
}
