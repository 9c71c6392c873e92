package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// MetadataID is the pseudo track id under which problems with
// dataset-level metadata files are reported.
const MetadataID = "*metadata*"

// SumFunc computes the content digest of one file. Validate uses the
// plain streaming digest; callers may substitute one that reuses
// digests cached from earlier runs.
type SumFunc func(path string) (string, error)

// Report lists every manifest file the local copy is missing and every
// file whose contents disagree with the manifest, keyed by track id
// with resolved absolute paths as values.
type Report struct {
	Missing    map[string][]string
	Mismatched map[string][]string
}

// OK reports a clean validation.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Mismatched) == 0
}

// Problems returns the total number of findings.
func (r *Report) Problems() int {
	n := 0
	for _, paths := range r.Missing {
		n += len(paths)
	}
	for _, paths := range r.Mismatched {
		n += len(paths)
	}
	return n
}

// ValidateIndex walks every manifest entry under root and reports
// files that are absent and files whose digest disagrees with the
// manifest. Data problems are findings, never errors, so a hopelessly
// corrupted local copy still validates to a complete report; the
// returned error is reserved for the environment itself misbehaving
// (cancellation, unreadable files). Nothing is written and no
// directories are created. Entries with a nil manifest checksum are
// checked for existence only. Within a track, roles are walked in
// sorted order so reports are stable run to run.
func ValidateIndex(ctx context.Context, idx *Index, root string, sum SumFunc) (*Report, error) {
	rep := &Report{
		Missing:    make(map[string][]string),
		Mismatched: make(map[string][]string),
	}

	for _, id := range idx.TrackIDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := checkManifest(id, idx.Tracks[id], root, sum, rep); err != nil {
			return nil, err
		}
	}
	if len(idx.Metadata) > 0 {
		if err := checkManifest(MetadataID, idx.Metadata, root, sum, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func checkManifest(id string, man TrackManifest, root string, sum SumFunc, rep *Report) error {
	for _, role := range man.Roles() {
		ref := man[role]
		if ref.Absent() {
			continue
		}
		path := Resolve(root, *ref.Path)

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				rep.Missing[id] = append(rep.Missing[id], path)
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if ref.Checksum == nil {
			continue
		}
		got, err := sum(path)
		if err != nil {
			return fmt.Errorf("digest %s: %w", path, err)
		}
		if got != *ref.Checksum {
			rep.Mismatched[id] = append(rep.Mismatched[id], path)
		}
	}
	return nil
}
