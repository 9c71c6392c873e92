package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBeats reads beat annotations, one "time [position]" pair per
// line, tab or space separated. Either every line carries a metric
// position or none does. An empty file means the track carries no beat
// annotation and yields nil.
func ParseBeats(path string) (*BeatData, error) {
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
	var positions []int
	for i, line := range lines {
		fields := strings.Fields(line)
		tm, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad beat time: %w", path, i+1, err)
		}
		times = append(times, tm)
		if len(fields) < 2 {
			continue
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad beat position: %w", path, i+1, err)
		}
		positions = append(positions, pos)
	}
	if len(positions) > 0 && len(positions) != len(times) {
		return nil, fmt.Errorf("parse %s: %d beat times but %d positions", path, len(times), len(positions))
	}

	return &BeatData{Times: times, Positions: positions}, nil
}
