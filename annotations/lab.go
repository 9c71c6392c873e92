package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSections reads a .lab file of "start end label" lines. An empty
// file means the track carries no section annotation and yields nil.
func ParseSections(path string) (*SectionData, error) {
	if path == "" {
		return nil, nil
	}
	intervals, labels, err := parseIntervalLab(path)
	if err != nil || intervals == nil {
		return nil, err
	}
	return &SectionData{Intervals: intervals, Labels: labels}, nil
}

// ParseChords reads a .lab file of "start end chord" lines, chord
// labels in Harte syntax ("C:maj", "A:min7", "N"). An empty file
// yields nil.
func ParseChords(path string) (*ChordData, error) {
	if path == "" {
		return nil, nil
	}
	intervals, labels, err := parseIntervalLab(path)
	if err != nil || intervals == nil {
		return nil, err
	}
	return &ChordData{Intervals: intervals, Labels: labels}, nil
}

// ParseKeys reads a .lab file of "start end key" lines. An empty file
// yields nil.
func ParseKeys(path string) (*KeyData, error) {
	if path == "" {
		return nil, nil
	}
	intervals, labels, err := parseIntervalLab(path)
	if err != nil || intervals == nil {
		return nil, err
	}
	return &KeyData{Intervals: intervals, Keys: labels}, nil
}

// parseIntervalLab handles the shared "start end label..." shape. The
// label keeps any internal spaces.
func parseIntervalLab(path string) ([][2]float64, []string, error) {
	lines, err := dataLines(path)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, nil
	}

	intervals := make([][2]float64, 0, len(lines))
	labels := make([]string, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, nil, fmt.Errorf("parse %s: line %d: want \"start end label\", got %q", path, i+1, line)
		}
		start, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: line %d: bad start time: %w", path, i+1, err)
		}
		end, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: line %d: bad end time: %w", path, i+1, err)
		}
		intervals = append(intervals, [2]float64{start, end})
		labels = append(labels, strings.Join(fields[2:], " "))
	}
	return intervals, labels, nil
}
