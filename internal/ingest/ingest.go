// Package ingest reads trajectory samples from whitespace-separated text, the
// interchange format produced by the capture tooling: one "x y z" triple per
// line.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/corner.report/internal/track"
)

// ParseTrack reads one numeric triple per line from r. Leading and trailing
// whitespace is stripped and blank lines are skipped; any remaining line must
// contain exactly three parseable numbers. Malformed input is a caller
// contract violation and wraps track.ErrInvalidArgument with the offending
// line number.
func ParseTrack(r io.Reader) (track.Track, error) {
	var trk track.Track
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 columns, got %d",
				track.ErrInvalidArgument, line, len(fields))
		}
		var coords [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: column %d: %v",
					track.ErrInvalidArgument, line, i+1, err)
			}
			coords[i] = v
		}
		trk = append(trk, track.Point{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	return trk, nil
}

// LoadTrackFile reads a track from a file on disk.
func LoadTrackFile(path string) (track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track file: %w", err)
	}
	defer f.Close()

	trk, err := ParseTrack(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trk, nil
}
