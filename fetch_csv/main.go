package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

var output = flag.String("output", "data/dimuon.csv", "destination path for the downloaded CSV")

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <csv-url>

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
	url := flag.Arg(0)

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		log.Fatal(err)
	}

	resp, err := http.Get(url)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("fetching %s: %s", url, resp.Status)
	}

	// Download to a temp file first so a partial fetch never replaces
	// good data.
	tmp, err := os.CreateTemp(filepath.Dir(*output), ".fetch-*")
	if err != nil {
		log.Fatal(err)
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		log.Fatal(err)
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		os.Remove(tmp.Name())
		log.Fatalf("short download: %d of %d bytes", n, resp.ContentLength)
	}

	if err := os.Rename(tmp.Name(), *output); err != nil {
		os.Remove(tmp.Name())
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d bytes)", *output, n)
}
