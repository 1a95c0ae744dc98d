// Command gen-track generates synthetic track files for detector tuning and
// test fixtures: straight lines, V-folds, and arcs, optionally with sampling
// jitter.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
)

func main() {
	output := flag.String("o", "track.txt", "output path")
	shape := flag.String("shape", "vee", "track shape: line, vee, or arc")
	points := flag.Int("n", 101, "number of samples")
	spacing := flag.Float64("spacing", 1.0, "sample spacing (meters)")
	jitter := flag.Float64("jitter", 0, "uniform positional jitter amplitude (meters)")
	seed := flag.Int64("seed", 1, "jitter random seed")
	flag.Parse()

	if *points < 2 {
		log.Fatal("need at least 2 samples")
	}

	trk, err := generate(*shape, *points, *spacing)
	if err != nil {
		log.Fatal(err)
	}
	if *jitter > 0 {
		applyJitter(trk, *jitter, *seed)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range trk {
		fmt.Fprintf(w, "%g %g %g\n", p[0], p[1], p[2])
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}
	log.Printf("✓ Created: %s (%s, %d samples)", *output, *shape, *points)
}

func generate(shape string, n int, spacing float64) ([][3]float64, error) {
	trk := make([][3]float64, n)
	switch shape {
	case "line":
		for i := range trk {
			trk[i] = [3]float64{float64(i) * spacing, 0, 0}
		}
	case "vee":
		// Out along +X, fold at the midpoint, back with a slight +Y drift so
		// the legs do not overlap exactly.
		fold := n / 2
		for i := 0; i <= fold; i++ {
			trk[i] = [3]float64{float64(i) * spacing, 0, 0}
		}
		for i := fold + 1; i < n; i++ {
			j := i - fold
			trk[i] = [3]float64{float64(fold-j) * spacing, 0.01 * float64(j) * spacing, 0}
		}
	case "arc":
		// Quarter circle in the XY plane.
		radius := float64(n-1) * spacing * 2 / math.Pi
		for i := range trk {
			theta := (math.Pi / 2) * float64(i) / float64(n-1)
			trk[i] = [3]float64{radius * math.Sin(theta), radius * (1 - math.Cos(theta)), 0}
		}
	default:
		return nil, fmt.Errorf("unknown shape %q (want line, vee, or arc)", shape)
	}
	return trk, nil
}

func applyJitter(trk [][3]float64, amplitude float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range trk {
		for axis := 0; axis < 3; axis++ {
			trk[i][axis] += amplitude * (2*rng.Float64() - 1)
		}
	}
}
