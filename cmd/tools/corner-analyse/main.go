// Command corner-analyse runs corner detection over a track file offline and
// prints a report, without touching a database or server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/corner.report/internal/ingest"
	"github.com/banshee-data/corner.report/internal/track"
)

// Report is the JSON export of one offline analysis.
type Report struct {
	Source  string               `json:"source"`
	Config  track.DetectorConfig `json:"config"`
	Summary track.RunSummary     `json:"summary"`
	Corners []track.Corner       `json:"corners"`
}

func main() {
	input := flag.String("input", "", "track file to analyse (required)")
	window := flag.Int("window", track.DefaultWindow, "samples between apex and each triangle arm")
	threshold := flag.Float64("threshold", track.DefaultThresholdDeg, "max corner angle (degrees)")
	outputJSON := flag.String("json", "", "optional JSON report output path")
	showAngles := flag.Bool("angles", false, "print the full angle series")
	flag.Parse()

	if *input == "" {
		log.Fatal("track file is required (-input)")
	}

	trk, err := ingest.LoadTrackFile(*input)
	if err != nil {
		log.Fatalf("failed to load track: %v", err)
	}

	cfg := track.DetectorConfig{Window: *window, ThresholdDeg: *threshold}
	angles, corners, err := track.NewDetector(cfg).Detect(trk)
	if err != nil {
		log.Fatalf("detection failed: %v", err)
	}
	summary := track.Summarize(trk, angles, corners)

	printReport(*input, cfg, summary, corners)
	if *showAngles {
		printAngles(angles)
	}

	if *outputJSON != "" {
		report := Report{Source: *input, Config: cfg, Summary: summary, Corners: corners}
		if err := exportJSON(report, *outputJSON); err != nil {
			log.Fatalf("failed to export JSON: %v", err)
		}
		log.Printf("✓ Report written: %s", *outputJSON)
	}
}

func printReport(source string, cfg track.DetectorConfig, s track.RunSummary, corners []track.Corner) {
	fmt.Printf("Track: %s\n", source)
	fmt.Printf("  samples:        %d\n", s.PointCount)
	fmt.Printf("  path length:    %.2f m\n", s.PathLengthM)
	fmt.Printf("  straightness:   %.3f\n", s.Straightness)
	fmt.Printf("  window:         %d\n", cfg.Window)
	fmt.Printf("  threshold:      %.1f°\n", cfg.ThresholdDeg)
	fmt.Printf("  defined angles: %d", s.DefinedCount)
	if s.DefinedCount > 0 {
		fmt.Printf(" (min %.1f°, mean %.1f°)", s.MinAngleDeg, s.MeanAngleDeg)
	}
	fmt.Println()
	fmt.Printf("  corners:        %d\n", len(corners))
	for _, c := range corners {
		fmt.Printf("    #%-5d (%8.2f, %8.2f, %8.2f)  %6.1f°\n",
			c.Index, c.Point.X, c.Point.Y, c.Point.Z, c.AngleDegrees)
	}
}

func printAngles(angles track.AngleSeries) {
	fmt.Println("Angle series:")
	for i, a := range angles {
		if !a.Valid {
			fmt.Printf("  %5d  -\n", i)
			continue
		}
		fmt.Printf("  %5d  %6.1f°\n", i, a.Degrees)
	}
}

func exportJSON(report Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
