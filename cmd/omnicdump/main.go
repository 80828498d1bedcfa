// Diagnostic tool for inspecting OMNIC files
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-spectro/omnic/omnic"
)

func main() {
	background := flag.Bool("background", false, "decode the series background (.srs)")
	interferogram := flag.String("interferogram", "", "decode an interferogram: sample or background (.spa)")
	reverseX := flag.Bool("reverse-x", false, "reverse the x axis of series output")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: omnicdump [flags] <file.spa|file.spg|file.srs>")
		os.Exit(1)
	}

	var opts []omnic.Option
	if *background {
		opts = append(opts, omnic.WithBackground())
	}
	if *interferogram != "" {
		opts = append(opts, omnic.WithInterferogram(*interferogram))
	}
	if *reverseX {
		opts = append(opts, omnic.WithReverseX())
	}

	ds, err := omnic.Open(flag.Arg(0), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if ds == nil {
		fmt.Println("no data (requested record absent)")
		return
	}

	rows, cols := ds.Shape()
	fmt.Printf("=== %s ===\n\n", ds.Filename)
	fmt.Printf("Shape:       (%d, %d)\n", rows, cols)
	fmt.Printf("Data:        %s [%s]\n", ds.Title, ds.Units)
	fmt.Printf("X axis:      %s [%s], %g .. %g\n", ds.XTitle, ds.XUnits, first(ds.X), last(ds.X))
	fmt.Printf("Y axis:      %s [%s]\n", ds.YTitle, ds.YUnits)
	fmt.Printf("Name:        %s\n", ds.Name)
	fmt.Printf("Original:    %s\n", ds.OriginalName)
	fmt.Printf("Decoded:     %s\n", ds.Date)
	if ds.Interferogram != "" {
		fmt.Printf("Record:      %s\n", ds.Interferogram)
	}
	if ds.LaserFrequency != 0 {
		fmt.Printf("Laser:       %g %s\n", ds.LaserFrequency, ds.LaserFrequencyUnits)
	}
	if ds.CollectionLength != 0 {
		fmt.Printf("Collection:  %g %s\n", ds.CollectionLength, ds.CollectionLengthUnits)
	}
	if ds.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", ds.Description)
	}

	fmt.Println("\nHistory:")
	for _, line := range ds.History() {
		fmt.Printf("  %s\n", line)
	}
}

func first(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

func last(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}
