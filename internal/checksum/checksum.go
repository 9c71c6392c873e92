package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// File returns the hex md5 digest of the file at path. The contents
// are streamed through the digest in fixed-size chunks, so
// multi-gigabyte audio files are never held in memory. md5 matches the
// digests stored in published dataset manifests; the goal is detecting
// corruption and truncation, not tampering.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Reader returns the hex md5 digest of everything in r. Identical
// bytes yield identical digests on every platform.
func Reader(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
