package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/dimuplot"
	"github.com/decibelcooper/dimuplot/dimuon"
)

var (
	configPath = flag.String("config", "", "YAML configuration file (default: CMS open-data layout)")
	pTMax      = flag.Float64("maxpt", 50, "maximum transverse momentum")
	etaLimit   = flag.Float64("etalimit", 2.5, "maximum absolute value of eta")
	nBinsPT    = flag.Int("nbinspt", 50, "number of bins in transverse momentum")
	nBinsEta   = flag.Int("nbinseta", 50, "number of bins in eta")
	title      = flag.String("title", "Muon Occupancy", "plot title")
	output     = flag.String("output", "out.png", "output file")
)

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

	cfg := dimuon.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = dimuon.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	occupancy := hbook.NewH2D(*nBinsEta, -*etaLimit, *etaLimit, *nBinsPT, 0, *pTMax)

	loader, err := dimuon.Open(flag.Arg(0), cfg.Columns)
	if err != nil {
		log.Fatal(err)
	}
	for {
		ev, err := loader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			loader.Close()
			log.Fatal(err)
		}

		for _, mu := range ev.Mu {
			p4, err := dimuon.FourVector(mu, cfg.MuonMass)
			if err != nil {
				loader.Close()
				log.Fatal(err)
			}
			occupancy.Fill(p4.Eta(), p4.Pt(), 1)
		}
	}
	loader.Close()

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "eta"
	p.Y.Label.Text = "p_T (GeV)"
	p.X.Tick.Marker = dimuplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = dimuplot.PreciseTicks{NSuggestedTicks: 5}

	grid := occupancy.GridXYZ()
	zMax := 0.0
	nx, ny := grid.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if z := grid.Z(i, j); z > zMax {
				zMax = z
			}
		}
	}
	if zMax == 0 {
		log.Fatal("no muons within the occupancy ranges")
	}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zMax)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(grid, pal)
	heatMap.Min = 0
	heatMap.Max = zMax
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		log.Panic(err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		log.Panic(err)
	}
	w.Close()
}
