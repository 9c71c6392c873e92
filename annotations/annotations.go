package annotations

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// BeatData is a sequence of beat times in seconds, with metric
// positions (1 = downbeat) when the source annotates them.
type BeatData struct {
	Times     []float64
	Positions []int
}

// SectionData marks labelled time spans such as verse, refrain or
// silence.
type SectionData struct {
	Intervals [][2]float64
	Labels    []string
}

// ChordData is a sequence of chord labels over time spans.
type ChordData struct {
	Intervals [][2]float64
	Labels    []string
}

// KeyData is a sequence of key labels over time spans.
type KeyData struct {
	Intervals [][2]float64
	Keys      []string
}

// F0Data is a fundamental-frequency contour: sampled times, f0 values
// in Hz with 0 marking unvoiced frames, and per-frame confidence when
// the source provides one.
type F0Data struct {
	Times       []float64
	Frequencies []float64
	Confidence  []float64
}

// LyricData is a time-aligned lyric transcript, with pronunciation
// hints when the source annotates them.
type LyricData struct {
	Starts         []float64
	Ends           []float64
	Lyrics         []string
	Pronunciations []string
}

// dataLines returns the non-blank, non-comment lines of an annotation
// file. The open error wraps fs.ErrNotExist for missing files and
// already names the path.
func dataLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read annotation %s: %w", path, err)
	}
	return lines, nil
}
