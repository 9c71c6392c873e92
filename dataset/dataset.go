package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"mircorpus/download"
	"mircorpus/internal/checksum"
)

var (
	// ErrInvalidTrackID signals a lookup with an identifier the index
	// does not contain. Raised at Track construction, never later.
	ErrInvalidTrackID = errors.New("invalid track id")
)

// Config describes one dataset: its manifest, where it lives locally,
// the parsers that turn its files into records, and how to fetch it.
type Config struct {
	// Name identifies the dataset. Required.
	Name string
	// Version labels the data revision the bundled index describes.
	Version string
	// Root is the local directory holding the dataset. Empty means
	// DefaultRoot()/Name.
	Root string
	// Index is the dataset manifest. Required.
	Index *Index
	// Properties declares the lazily parsed track attributes.
	Properties map[string]Property
	// Metadata parses the dataset-level metadata table, if the corpus
	// ships one.
	Metadata MetadataFunc
	// Remotes are the downloadable resources, if the corpus is openly
	// distributed.
	Remotes []download.Remote
	// DownloadNote is shown whenever files must be obtained by hand,
	// with or without remotes alongside.
	DownloadNote string
	// Citation is the reference asked for when publishing results.
	Citation string
	// License covers the data, not this code.
	License string
}

// Dataset binds an index to a local root and produces Track views over
// it. The index is shared read-only by every Track; the metadata cache
// is owned per instance.
type Dataset struct {
	name     string
	version  string
	root     string
	index    *Index
	props    map[string]Property
	metaFn   MetadataFunc
	meta     *metadataCache
	remotes  []download.Remote
	note     string
	citation string
	license  string
}

// New builds a Dataset from cfg. Construction performs no I/O: the
// root is recorded, not created or checked.
func New(cfg Config) (*Dataset, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("dataset: name is required")
	}
	if cfg.Index == nil {
		return nil, fmt.Errorf("dataset %s: index is required", cfg.Name)
	}
	root := cfg.Root
	if root == "" {
		root = filepath.Join(DefaultRoot(), cfg.Name)
	}
	return &Dataset{
		name:     cfg.Name,
		version:  cfg.Version,
		root:     root,
		index:    cfg.Index,
		props:    cfg.Properties,
		metaFn:   cfg.Metadata,
		meta:     newMetadataCache(),
		remotes:  cfg.Remotes,
		note:     cfg.DownloadNote,
		citation: cfg.Citation,
		license:  cfg.License,
	}, nil
}

// Name returns the dataset identifier.
func (d *Dataset) Name() string { return d.name }

// Version returns the data revision label.
func (d *Dataset) Version() string { return d.version }

// Root returns the resolved local directory.
func (d *Dataset) Root() string { return d.root }

// Citation returns the reference to cite when publishing results.
func (d *Dataset) Citation() string { return d.citation }

// License returns the license covering the data.
func (d *Dataset) License() string { return d.license }

// DownloadNote returns the manual-acquisition note, if any.
func (d *Dataset) DownloadNote() string { return d.note }

// PropertyNames returns the declared property names, sorted.
func (d *Dataset) PropertyNames() []string {
	names := make([]string, 0, len(d.props))
	for name := range d.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoteNames returns the downloadable resource names in declaration
// order.
func (d *Dataset) RemoteNames() []string {
	names := make([]string, 0, len(d.remotes))
	for _, r := range d.remotes {
		names = append(names, r.Name)
	}
	return names
}

// Track returns the view for id. Unknown identifiers fail with
// ErrInvalidTrackID before any file I/O can happen.
func (d *Dataset) Track(id string) (*Track, error) {
	return newTrack(id, d.name, d.root, d.index, d.props)
}

// LoadTracks returns one Track per index entry, keyed by id.
func (d *Dataset) LoadTracks() map[string]*Track {
	tracks := make(map[string]*Track, len(d.index.Tracks))
	for id := range d.index.Tracks {
		t, err := d.Track(id)
		if err != nil {
			// ids come from the index itself
			continue
		}
		tracks[id] = t
	}
	return tracks
}

// TrackIDs returns the dataset's identifiers, sorted.
func (d *Dataset) TrackIDs() []string { return d.index.TrackIDs() }

// Choice returns a random track, handy for eyeballing a dataset in an
// interactive session.
func (d *Dataset) Choice() (*Track, error) {
	ids := d.TrackIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("dataset %s: no tracks", d.name)
	}
	return d.Track(ids[rand.Intn(len(ids))])
}

// Validate checks the local copy against the manifest. See
// ValidateIndex for the reporting contract.
func (d *Dataset) Validate(ctx context.Context) (*Report, error) {
	return d.ValidateWith(ctx, checksum.File)
}

// ValidateWith is Validate with a caller-supplied digest function,
// letting callers reuse digests cached from earlier runs.
func (d *Dataset) ValidateWith(ctx context.Context, sum SumFunc) (*Report, error) {
	return ValidateIndex(ctx, d.index, d.root, sum)
}

// Metadata returns the dataset-level metadata table, parsing it on
// first use and memoizing per root. Datasets without a metadata table
// return (nil, nil). A table that is declared but absent on disk is a
// soft failure: logged once, memoized as absent, and degraded to
// (nil, nil) so per-track attributes can fall back to zero values.
func (d *Dataset) Metadata() (any, error) {
	if d.metaFn == nil {
		return nil, nil
	}
	return d.meta.get(d.root, func(root string) (any, error) {
		val, err := d.metaFn(root)
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			log.Warn().
				Str("dataset", d.name).
				Str("root", root).
				Msg("metadata file missing, track metadata degrades to zero values")
			return nil, nil
		}
		return val, err
	})
}

// DownloadOptions selects and tunes what Download fetches.
type DownloadOptions struct {
	// Resources names a subset of remotes to fetch; nil means all.
	Resources []string
	// Force re-fetches files that are already present and verified.
	Force bool
	// Cleanup removes archives once they are extracted.
	Cleanup bool
}

// Download fetches the dataset's remote resources into its root,
// creating the root directory. Fetches are idempotent: a destination
// already present with a matching digest is skipped unless Force is
// set, and fetched bytes are staged under a temporary name until their
// digest verifies, so an interrupted download never leaves a file
// behind that a later Validate would wrongly trust.
func (d *Dataset) Download(ctx context.Context, opts DownloadOptions) error {
	if d.note != "" {
		log.Info().Str("dataset", d.name).Msg(d.note)
	}
	if len(d.remotes) == 0 {
		if d.note != "" {
			return nil
		}
		return fmt.Errorf("dataset %s: no remote resources", d.name)
	}

	remotes, err := d.selectRemotes(opts.Resources)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("dataset %s: create root: %w", d.name, err)
	}

	client := download.NewClient()
	for _, r := range remotes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := client.Fetch(ctx, d.root, r, opts.Force); err != nil {
			return fmt.Errorf("dataset %s: %w", d.name, err)
		}
		if opts.Cleanup && r.Unpack {
			if err := os.Remove(filepath.Join(d.root, r.Filename)); err != nil {
				return fmt.Errorf("dataset %s: cleanup %s: %w", d.name, r.Filename, err)
			}
		}
	}
	return nil
}

func (d *Dataset) selectRemotes(names []string) ([]download.Remote, error) {
	if names == nil {
		return d.remotes, nil
	}
	byName := make(map[string]download.Remote, len(d.remotes))
	for _, r := range d.remotes {
		byName[r.Name] = r
	}
	remotes := make([]download.Remote, 0, len(names))
	for _, name := range names {
		r, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("dataset %s: unknown resource %q (have %v)", d.name, name, d.RemoteNames())
		}
		remotes = append(remotes, r)
	}
	return remotes, nil
}
