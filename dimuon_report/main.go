package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/decibelcooper/dimuplot"
)

var (
	metricsPath = flag.String("metrics", "out/metrics.json", "metrics.json produced by dimuon_spectrum")
	outDir      = flag.String("outdir", "out", "output directory for results.md")
	reportTitle = flag.String("title", "Dimuon Invariant Mass", "report title")
	figures     = dimuplot.StringArrayFlags{Array: []string{
		"mass_spectrum.png",
		"mass_spectrum_log.png",
		"mass_residuals.png",
	}}
)

func init() {
	flag.Var(&figures, "figure", "figure file to embed, relative to outdir/figures (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

options:
`,
	)
	flag.PrintDefaults()
}

// metrics is the scalar slice of the summary contract; the distribution
// payload is not needed for the report.
type metrics struct {
	EventCount   int64   `json:"event_count"`
	SkippedRows  int64   `json:"skipped_rows"`
	ResidualRMS  float64 `json:"residual_rms"`
	ResidualMean float64 `json:"residual_mean"`
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	data, err := os.ReadFile(*metricsPath)
	if err != nil {
		log.Fatal(err)
	}
	var m metrics
	if err := json.Unmarshal(data, &m); err != nil {
		log.Fatal(err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", *reportTitle)
	fmt.Fprintf(&sb, "_Generated on %s_\n\n", time.Now().UTC().Format("2006-01-02T15:04:05")+" UTC")
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Events analyzed: **%d**\n", m.EventCount)
	if m.SkippedRows > 0 {
		fmt.Fprintf(&sb, "- Malformed rows skipped: **%d**\n", m.SkippedRows)
	}
	fmt.Fprintf(&sb, "- Residual mean: **%.3e GeV**\n", m.ResidualMean)
	fmt.Fprintf(&sb, "- Residual RMS: **%.3e GeV**\n\n", m.ResidualRMS)

	sb.WriteString("## Figures\n\n")
	for _, fig := range figures.Array {
		fmt.Fprintf(&sb, "![%s](figures/%s)\n", fig, fig)
	}
	sb.WriteString("\n## Interpretation\n\n")
	sb.WriteString("Resonant structure appears only after aggregating many events. " +
		"Invariant mass is not an event-level property but a statistical construct " +
		"derived from Lorentz-invariant constraints.\n")

	out := filepath.Join(*outDir, "results.md")
	if err := os.WriteFile(out, []byte(sb.String()), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", out)
}
