// Command transect-report is a batch tool: it reads a CSV of survey records,
// runs the elevation change pipeline, prints a per-site summary table, and
// writes PNG plots for every site.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/banshee-data/elevation.report/internal/ingest"
	"github.com/banshee-data/elevation.report/internal/report"
	"github.com/banshee-data/elevation.report/internal/transect"
	"github.com/banshee-data/elevation.report/internal/units"
)

var (
	csvFile     = flag.String("csv", "", "CSV file of survey records (required)")
	outDir      = flag.String("out", "plots", "Base directory for PNG output")
	earlyYear   = flag.Int("early-year", 2021, "Earlier survey year")
	lateYear    = flag.Int("late-year", 2024, "Later survey year")
	outputUnits = flag.String("units", units.Meters, "Output units ("+units.GetValidUnitsString()+")")
	noPlots     = flag.Bool("no-plots", false, "Skip PNG generation, print the summary only")
)

func main() {
	flag.Parse()

	if *csvFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !units.IsValid(*outputUnits) {
		log.Fatalf("invalid units %q: valid units are %s", *outputUnits, units.GetValidUnitsString())
	}

	result, err := ingest.ReadFile(*csvFile)
	if err != nil {
		log.Fatalf("failed to ingest %s: %v", *csvFile, err)
	}
	if len(result.Records) == 0 {
		log.Fatalf("no usable records in %s (%d rows skipped)", *csvFile, result.Skipped)
	}

	snap := transect.BuildSnapshot(result.Records, *earlyYear, *lateYear)

	printSummary(snap, *outputUnits)

	if *noPlots {
		return
	}

	runDir := report.MakeRunDir(*outDir)
	count, err := report.WriteSitePlots(snap, runDir)
	if err != nil {
		log.Fatalf("failed to write plots: %v", err)
	}
	log.Printf("wrote %d plots to %s", count, runDir)
}

func printSummary(snap *transect.Snapshot, outputUnits string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "SITE\tMATCHED\tMEAN Δ (%[1]s)\tMIN Δ (%[1]s)\tMAX Δ (%[1]s)\tNET AREA (%[1]s²)\n", outputUnits)
	for _, site := range snap.Sites {
		summary := snap.Result(site).Summary
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
			site,
			summary.MatchedCount,
			units.ConvertElevation(summary.MeanDiff, outputUnits),
			units.ConvertElevation(summary.MinDiff, outputUnits),
			units.ConvertElevation(summary.MaxDiff, outputUnits),
			units.ConvertArea(summary.NetArea, outputUnits),
		)
	}
	w.Flush()
}
