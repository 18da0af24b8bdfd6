package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/dimuplot"
	"github.com/decibelcooper/dimuplot/dimuon"
)

var (
	configPath = flag.String("config", "", "YAML configuration file (default: CMS open-data layout)")
	outDir     = flag.String("outdir", "out", "output directory for figures and metrics.json")
	title      = flag.String("title", "Dimuon Invariant Mass Spectrum", "plot title")
	workers    = flag.Int("workers", 1, "number of reconstruction workers")
	prof       = flag.Bool("prof", false, "enable CPU profiling")
	windows    dimuplot.WindowFlags
)

func init() {
	flag.Var(&windows, "window", "zoom window as name:min:max:bins (repeatable, overrides config)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <csv-input-file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *prof {
		defer profile.Start().Stop()
	}

	cfg := dimuon.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = dimuon.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if len(windows.Windows) > 0 {
		cfg.ZoomWindows = nil
		for _, w := range windows.Windows {
			cfg.ZoomWindows = append(cfg.ZoomWindows, dimuon.Window(w))
		}
	}

	loader, err := dimuon.Open(flag.Arg(0), cfg.Columns)
	if err != nil {
		log.Fatal(err)
	}

	summary, err := dimuon.RunParallel(loader, cfg, *workers)
	if err != nil {
		log.Fatal(err)
	}

	figDir := filepath.Join(*outDir, "figures")
	if err := os.MkdirAll(figDir, 0o755); err != nil {
		log.Fatal(err)
	}

	figures := []figure{
		{"mass", *title, "Mass (GeV)", "mass_spectrum.png", false, false},
		{"mass_log", *title + " (log scale)", "Mass (GeV)", "mass_spectrum_log.png", true, true},
		{"residuals", "Invariant Mass Residuals", "Reconstructed - Reference (GeV)", "mass_residuals.png", false, false},
	}
	for _, w := range cfg.ZoomWindows {
		figures = append(figures, figure{
			"mass_" + w.Name,
			fmt.Sprintf("%s (%s)", *title, w.Name),
			"Mass (GeV)",
			"mass_" + w.Name + ".png",
			false, false,
		})
	}

	for _, fig := range figures {
		dist := summary.Distribution(fig.dist)
		if dist == nil {
			log.Fatalf("no distribution named %q", fig.dist)
		}
		if err := savePlot(dist, fig, filepath.Join(figDir, fig.file)); err != nil {
			log.Fatal(err)
		}
	}

	if err := writeMetrics(summary, filepath.Join(*outDir, "metrics.json")); err != nil {
		log.Fatal(err)
	}

	log.Printf("%d events, residual RMS %.3e GeV", summary.EventCount, summary.ResidualRMS)
}

type figure struct {
	dist       string
	title      string
	xLabel     string
	file       string
	logX, logY bool
}

func savePlot(dist *dimuon.Distribution, fig figure, path string) error {
	p := plot.New()
	p.Title.Text = fig.title
	p.X.Label.Text = fig.xLabel
	p.Y.Label.Text = "Events"
	p.X.Tick.Marker = dimuplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = dimuplot.PreciseTicks{NSuggestedTicks: 5}
	if fig.logX {
		p.X.Tick.Marker = dimuplot.LogTicks{}
		p.X.Scale = dimuplot.LogScale{}
	}
	if fig.logY {
		p.Y.Tick.Marker = dimuplot.LogTicks{}
		p.Y.Scale = dimuplot.LogScale{}
	}

	h := hplot.NewH1D(dist.Hist())
	if fig.logY {
		h.Infos.Style = hplot.HInfoNone
	} else {
		h.Infos.Style = hplot.HInfoSummary
	}
	p.Add(h)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func writeMetrics(s *dimuon.Summary, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
