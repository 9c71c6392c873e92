package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseF0 reads a fundamental-frequency contour of "time frequency
// [confidence]" lines, tab or space separated. A frequency of 0 marks
// an unvoiced frame. Confidence is kept only when every line carries
// one. An empty file yields nil.
func ParseF0(path string) (*F0Data, error) {
	if path == "" {
		return nil, nil
	}
	lines, err := dataLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	times := make([]float64, 0, len(lines))
	freqs := make([]float64, 0, len(lines))
	var confidence []float64
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("parse %s: line %d: want \"time frequency\", got %q", path, i+1, line)
		}
		tm, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad time: %w", path, i+1, err)
		}
		hz, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad frequency: %w", path, i+1, err)
		}
		times = append(times, tm)
		freqs = append(freqs, hz)
		if len(fields) < 3 {
			continue
		}
		conf, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad confidence: %w", path, i+1, err)
		}
		confidence = append(confidence, conf)
	}
	if len(confidence) > 0 && len(confidence) != len(times) {
		return nil, fmt.Errorf("parse %s: %d frames but %d confidence values", path, len(times), len(confidence))
	}

	return &F0Data{Times: times, Frequencies: freqs, Confidence: confidence}, nil
}
