package ikala

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const idMappingFile = "id_mapping.txt"

func loadIDMapping(root string) (any, error) {
	m, err := ReadIDMapping(filepath.Join(root, idMappingFile))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReadIDMapping parses the singer table, one "singer track" pair per
// line, keyed by track id.
func ReadIDMapping(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read id mapping: %w", err)
	}
	defer f.Close()

	mapping := make(map[string]string)
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("parse %s: line %d: want \"singer track\", got %q", path, line, text)
		}
		mapping[fields[1]] = fields[0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read id mapping %s: %w", path, err)
	}
	return mapping, nil
}
