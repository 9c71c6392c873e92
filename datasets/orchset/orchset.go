package orchset

import (
	_ "embed"
	"fmt"

	"mircorpus/annotations"
	"mircorpus/audioio"
	"mircorpus/dataset"
	"mircorpus/download"
)

// Name is the registry identifier.
const Name = "orchset"

//go:embed orchset_index_1.0.json
var indexJSON []byte

const citation = `Bosch, J., Marxer, R., Gomez, E. "Evaluation and Combination of
Pitch Estimation Methods for Melody Extraction in Symphonic Classical
Music". Journal of New Music Research, 45(2):101-117, 2016.`

var remotes = []download.Remote{
	{
		Name:     "all",
		URL:      "https://zenodo.org/record/1289786/files/Orchset_dataset_0.zip?download=1",
		Filename: "Orchset_dataset_0.zip",
		Checksum: "cf6fe52d64624f61ee116c752fb318ca",
		Unpack:   true,
	},
}

// Dataset is ORCHSET: symphonic excerpts with melody-line F0
// annotations for predominant melody extraction research.
type Dataset struct {
	*dataset.Dataset
}

// New builds the dataset rooted at root, with "" meaning the default
// location.
func New(root string) (*Dataset, error) {
	idx, err := dataset.ParseIndex(indexJSON)
	if err != nil {
		return nil, fmt.Errorf("orchset: bundled index: %w", err)
	}
	d, err := dataset.New(dataset.Config{
		Name:    Name,
		Version: "1.0",
		Root:    root,
		Index:   idx,
		Properties: map[string]dataset.Property{
			"melody":       {Role: "melody", Parse: parseMelody},
			"audio_mono":   {Role: "audio_mono", Uncached: true, Parse: parseAudio},
			"audio_stereo": {Role: "audio_stereo", Uncached: true, Parse: parseAudio},
		},
		Metadata: loadMetadata,
		Remotes:  remotes,
		Citation: citation,
		License:  "CC BY-NC-SA 4.0",
	})
	if err != nil {
		return nil, err
	}
	return &Dataset{Dataset: d}, nil
}

func init() {
	dataset.Register(Name, func(root string) (*dataset.Dataset, error) {
		d, err := New(root)
		if err != nil {
			return nil, err
		}
		return d.Dataset, nil
	})
}

func parseMelody(path string) (any, error) {
	f0, err := annotations.ParseF0(path)
	if err != nil || f0 == nil {
		return nil, err
	}
	return f0, nil
}

func parseAudio(path string) (any, error) {
	a, err := audioio.ReadWAV(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Track is one symphonic excerpt.
type Track struct {
	*dataset.Track
	ds *Dataset
}

// Track returns the typed view for id.
func (d *Dataset) Track(id string) (*Track, error) {
	tr, err := d.Dataset.Track(id)
	if err != nil {
		return nil, err
	}
	return &Track{Track: tr, ds: d}, nil
}

// LoadTracks returns every excerpt, keyed by id.
func (d *Dataset) LoadTracks() map[string]*Track {
	tracks := make(map[string]*Track, len(d.TrackIDs()))
	for _, id := range d.TrackIDs() {
		tr, err := d.Track(id)
		if err != nil {
			continue
		}
		tracks[id] = tr
	}
	return tracks
}

// Melody returns the annotated melody-line F0 contour.
func (t *Track) Melody() (*annotations.F0Data, error) {
	v, err := t.Load("melody")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.F0Data), nil
}

// AudioMono returns the mono mixdown, decoded fresh on every call.
func (t *Track) AudioMono() (*audioio.Audio, error) {
	v, err := t.Load("audio_mono")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*audioio.Audio), nil
}

// AudioStereo returns the stereo mix, decoded fresh on every call.
func (t *Track) AudioStereo() (*audioio.Audio, error) {
	v, err := t.Load("audio_stereo")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*audioio.Audio), nil
}

// Meta returns the excerpt's row of the dataset metadata table, or nil
// when the table is absent.
func (t *Track) Meta() (*Meta, error) {
	v, err := t.ds.Metadata()
	if err != nil || v == nil {
		return nil, err
	}
	return v.(map[string]*Meta)[t.ID], nil
}
