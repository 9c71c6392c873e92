package dataset

import (
	"fmt"
	"sync"
)

// Parser turns one annotation file into its in-memory record. Parsers
// receive "" for an absent role and must return (nil, nil) in that
// case; for a path that does not exist they fail with an error
// wrapping fs.ErrNotExist that names the path.
type Parser func(path string) (any, error)

// Property binds a named track attribute to a manifest role and the
// parser that materializes it. Several properties may read the same
// role. Cached properties compute once per Track instance; uncached
// ones re-read the file on every access, the usual choice for decoded
// audio so large buffers are not pinned in memory. Each loader
// documents which of its properties are uncached.
type Property struct {
	Role     string
	Parse    Parser
	Uncached bool
}

// Track is a per-identifier view of one index entry bound to a local
// root. Construction is always cheap: every role path is resolved
// eagerly, but that is string joining only, and nothing touches the
// filesystem until a property is first accessed. Cached property
// values live for the life of the instance and are not shared between
// instances, even for the same identifier. A file changed on disk
// after the first read goes unnoticed.
type Track struct {
	ID string

	dataset string
	man     TrackManifest
	paths   map[string]string
	props   map[string]Property
	cells   map[string]func() (any, error)
}

func newTrack(id, datasetName, root string, idx *Index, props map[string]Property) (*Track, error) {
	man, ok := idx.Tracks[id]
	if !ok {
		return nil, fmt.Errorf("dataset %s: track %q: %w", datasetName, id, ErrInvalidTrackID)
	}

	t := &Track{
		ID:      id,
		dataset: datasetName,
		man:     man,
		paths:   make(map[string]string, len(man)),
		props:   props,
		cells:   make(map[string]func() (any, error), len(props)),
	}
	for role, ref := range man {
		if ref.Absent() {
			t.paths[role] = ""
			continue
		}
		t.paths[role] = Resolve(root, *ref.Path)
	}
	for name, prop := range props {
		if prop.Uncached {
			continue
		}
		parse, path := prop.Parse, t.paths[prop.Role]
		t.cells[name] = sync.OnceValues(func() (any, error) {
			return parse(path)
		})
	}
	return t, nil
}

// Path returns the absolute path resolved for role, or "" when the
// manifest declares the role absent or does not mention it.
func (t *Track) Path(role string) string { return t.paths[role] }

// Roles returns the manifest roles declared for this track, sorted.
func (t *Track) Roles() []string { return t.man.Roles() }

// Ref returns the manifest entry for role.
func (t *Track) Ref(role string) FileRef { return t.man[role] }

// Load returns the value of the named property. Cached properties
// parse their file on the first access only, even when that first
// access races across goroutines; uncached ones parse on every call.
// A role the manifest declares absent yields (nil, nil) without the
// parser ever running.
func (t *Track) Load(name string) (any, error) {
	prop, ok := t.props[name]
	if !ok {
		return nil, fmt.Errorf("dataset %s: track %s: no property %q", t.dataset, t.ID, name)
	}
	if t.paths[prop.Role] == "" {
		return nil, nil
	}
	if prop.Uncached {
		return prop.Parse(t.paths[prop.Role])
	}
	return t.cells[name]()
}
