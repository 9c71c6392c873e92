package annotations

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAnnotation(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeAnnotationBytes(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDataLinesSkipsBlanksAndComments(t *testing.T) {
	path := writeAnnotation(t, "a.lab", "# header comment\n\n0.0 1.0 A\n   \n1.0 2.0 B\n")
	lines, err := dataLines(path)
	if err != nil {
		t.Fatalf("dataLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if lines[0] != "0.0 1.0 A" || lines[1] != "1.0 2.0 B" {
		t.Errorf("lines = %v", lines)
	}
}
