package checksum

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: "d41d8cd98f00b204e9800998ecf8427e"},
		{name: "abc", content: "abc", want: "900150983cd24fb0d6963f7d28e17f72"},
		{
			name:    "sentence",
			content: "The quick brown fox jumps over the lazy dog",
			want:    "9e107d9d372bb6826bd81d3542a419d6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.bin")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			got, err := File(path)
			if err != nil {
				t.Fatalf("File: %v", err)
			}
			if got != tt.want {
				t.Fatalf("File = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.wav"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope.wav") {
		t.Fatalf("error should name the path, got %q", err.Error())
	}
}

func TestFileMatchesReader(t *testing.T) {
	// A payload larger than any single read chunk, to exercise streaming.
	payload := bytes.Repeat([]byte("0123456789abcdef"), 1<<16)

	path := filepath.Join(t.TempDir(), "large.bin")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fromFile, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	fromReader, err := Reader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if fromFile != fromReader {
		t.Fatalf("File = %q, Reader = %q; digests must agree", fromFile, fromReader)
	}
}

func TestReader(t *testing.T) {
	got, err := Reader(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if want := "900150983cd24fb0d6963f7d28e17f72"; got != want {
		t.Fatalf("Reader = %q, want %q", got, want)
	}
}
