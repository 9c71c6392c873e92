package orchset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const metadataFile = "Orchset_Metadata.csv"

// Meta is one row of the ORCHSET metadata table.
type Meta struct {
	Composer               string
	Work                   string
	Excerpt                string
	PredominantInstruments []string
	AlternatingMelody      bool
	ContainsWinds          bool
	ContainsStrings        bool
	ContainsBrass          bool
	OnlyWinds              bool
	OnlyStrings            bool
	OnlyBrass              bool
}

func loadMetadata(root string) (any, error) {
	m, err := ReadMetadata(filepath.Join(root, metadataFile))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReadMetadata parses the metadata table, keyed by track id. The first
// row is a header.
func ReadMetadata(path string) (map[string]*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read orchset metadata: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	meta := make(map[string]*Meta, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "track_id" {
			continue
		}
		if len(row) != 12 {
			return nil, fmt.Errorf("parse %s: row %d: want 12 columns, got %d", path, i+1, len(row))
		}
		m := &Meta{
			Composer: row[1],
			Work:     row[2],
			Excerpt:  row[3],
		}
		for _, inst := range strings.Split(row[4], "+") {
			if inst = strings.TrimSpace(inst); inst != "" {
				m.PredominantInstruments = append(m.PredominantInstruments, inst)
			}
		}
		for col, dst := range map[int]*bool{
			5:  &m.AlternatingMelody,
			6:  &m.ContainsWinds,
			7:  &m.ContainsStrings,
			8:  &m.ContainsBrass,
			9:  &m.OnlyWinds,
			10: &m.OnlyStrings,
			11: &m.OnlyBrass,
		} {
			v, err := strconv.ParseBool(row[col])
			if err != nil {
				return nil, fmt.Errorf("parse %s: row %d, column %d: %w", path, i+1, col+1, err)
			}
			*dst = v
		}
		meta[row[0]] = m
	}
	return meta, nil
}
