package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// FileRef locates one file belonging to a track: a dataset-relative
// path and the expected md5 digest of its contents. A nil Path means
// the role is declared absent for this track; a nil Checksum means the
// file is checked for existence only, never for content.
type FileRef struct {
	Path     *string
	Checksum *string
}

// NewFileRef returns a ref for a present file. An empty sum records an
// existence-only entry. The zero FileRef declares the role absent.
func NewFileRef(rel, sum string) FileRef {
	r := FileRef{Path: &rel}
	if sum != "" {
		r.Checksum = &sum
	}
	return r
}

// Absent reports whether the manifest declares this role absent.
func (r FileRef) Absent() bool { return r.Path == nil }

// MarshalJSON writes the 2-element [path, checksum] array used by
// published manifests. The shape is a compatibility surface: manifests
// are checked into distributions and versioned independently of code.
func (r FileRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*string{r.Path, r.Checksum})
}

// UnmarshalJSON reads the 2-element [path, checksum] manifest array.
func (r *FileRef) UnmarshalJSON(data []byte) error {
	var pair []*string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("manifest entry must be a [path, checksum] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("manifest entry must have 2 elements, got %d", len(pair))
	}
	r.Path, r.Checksum = pair[0], pair[1]
	return nil
}

// TrackManifest maps role names ("audio", "f0", "lyrics") to the files
// registered for one track. Role names are fixed by convention per
// dataset.
type TrackManifest map[string]FileRef

// Roles returns the manifest's role names in sorted order.
func (m TrackManifest) Roles() []string {
	roles := make([]string, 0, len(m))
	for role := range m {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Version is a manifest revision label. Manifests written by older
// tooling store it as a bare number, newer ones as a string; both
// decode to the string form.
type Version string

// UnmarshalJSON accepts either encoding.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Version(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("manifest version must be a string or number")
	}
	*v = Version(n.String())
	return nil
}

// Index is a dataset manifest: for every track identifier, the files
// that make the track up, plus optional dataset-level metadata files.
// An Index is loaded once and never mutated afterward, so it is safe
// to share by reference across tracks and goroutines.
type Index struct {
	Version  Version                  `json:"version,omitempty"`
	Tracks   map[string]TrackManifest `json:"tracks"`
	Metadata TrackManifest            `json:"metadata,omitempty"`
}

// ParseIndex decodes a JSON manifest and checks its structural
// invariants. A manifest without a tracks key, or with a track mapped
// to an empty manifest, is rejected outright.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	if idx.Tracks == nil {
		return nil, fmt.Errorf("parse index: missing required key %q", "tracks")
	}
	for id, man := range idx.Tracks {
		if len(man) == 0 {
			return nil, fmt.Errorf("parse index: track %q has an empty manifest", id)
		}
	}
	return &idx, nil
}

// ReadIndex loads a manifest from a JSON file.
func ReadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return ParseIndex(data)
}

// TrackIDs returns every track identifier in the index, sorted.
func (idx *Index) TrackIDs() []string {
	ids := make([]string, 0, len(idx.Tracks))
	for id := range idx.Tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
