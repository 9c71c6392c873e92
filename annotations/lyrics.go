package annotations

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// ParseLyrics reads a time-aligned transcript of "start end text
// [pronunciation]" lines. Several vocal corpora ship transcripts in
// legacy Chinese encodings, so the file is decoded as UTF-8 first
// (with or without BOM) and as Big5 then GBK when that fails. An empty
// file yields nil.
func ParseLyrics(path string) (*LyricData, error) {
	if path == "" {
		return nil, nil
	}
	text, err := readTextFile(path)
	if err != nil {
		return nil, err
	}

	data := &LyricData{}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("parse %s: line %d: want \"start end text\", got %q", path, i+1, line)
		}
		start, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad start time: %w", path, i+1, err)
		}
		end, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: bad end time: %w", path, i+1, err)
		}
		data.Starts = append(data.Starts, start)
		data.Ends = append(data.Ends, end)
		data.Lyrics = append(data.Lyrics, fields[2])
		if len(fields) > 3 {
			data.Pronunciations = append(data.Pronunciations, strings.Join(fields[3:], " "))
		} else {
			data.Pronunciations = append(data.Pronunciations, "")
		}
	}
	if len(data.Starts) == 0 {
		return nil, nil
	}
	return data, nil
}

// readTextFile returns the file contents as UTF-8, stripping a BOM and
// falling back to Big5 and GBK for legacy transcripts.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read lyrics: %w", err)
	}

	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})), nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	// The decoders substitute U+FFFD instead of failing, so a
	// substitution-free decode is the signal the guess was right.
	if decoded, err := decodeWith(data, traditionalchinese.Big5.NewDecoder()); err == nil && !strings.ContainsRune(decoded, utf8.RuneError) {
		return decoded, nil
	}
	decoded, err := decodeWith(data, simplifiedchinese.GBK.NewDecoder())
	if err != nil {
		return "", fmt.Errorf("decode lyrics %s: %w", path, err)
	}
	return decoded, nil
}

func decodeWith(data []byte, dec transform.Transformer) (string, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
