package giantstepskey

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mircorpus/audioio"
	"mircorpus/dataset"
	"mircorpus/download"
)

// Name is the registry identifier.
const Name = "giantsteps_key"

//go:embed giantstepskey_index_1.0.json
var indexJSON []byte

const citation = `Knees, P., Faraldo, A., Herrera, P., Vogl, R., Boeck, S.,
Hoerschlaeger, F., Le Goff, M. "Two data sets for tempo estimation and
key detection in electronic dance music annotated from user
corrections". 16th International Society for Music Information
Retrieval Conference, 2015.`

var remotes = []download.Remote{
	{
		Name:     "audio",
		URL:      "https://github.com/GiantSteps/giantsteps-key-dataset/releases/download/v1.0/audio.zip",
		Filename: "audio.zip",
		Checksum: "8aee51d49aea4ee19ca8dea5226dcc85",
		Unpack:   true,
	},
	{
		Name:     "keys",
		URL:      "https://github.com/GiantSteps/giantsteps-key-dataset/releases/download/v1.0/keys.zip",
		Filename: "keys.zip",
		Checksum: "41a204628ff5b12516011a855a255752",
		Unpack:   true,
	},
	{
		Name:     "metadata",
		URL:      "https://github.com/GiantSteps/giantsteps-key-dataset/releases/download/v1.0/meta.zip",
		Filename: "meta.zip",
		Checksum: "1366aaa154c9d8ebf7c47f02c9dc9abd",
		Unpack:   true,
	},
}

// TrackMeta is the Beatport metadata shipped per track.
type TrackMeta struct {
	Artists []string `json:"artists"`
	Genres  []string `json:"genres"`
	Tempo   float64  `json:"tempo"`
}

// Dataset is the GiantSteps key dataset: electronic dance music
// excerpts with expert-corrected global key annotations.
type Dataset struct {
	*dataset.Dataset
}

// New builds the dataset rooted at root, with "" meaning the default
// location.
func New(root string) (*Dataset, error) {
	idx, err := dataset.ParseIndex(indexJSON)
	if err != nil {
		return nil, fmt.Errorf("giantsteps_key: bundled index: %w", err)
	}
	d, err := dataset.New(dataset.Config{
		Name:    Name,
		Version: "1.0",
		Root:    root,
		Index:   idx,
		Properties: map[string]dataset.Property{
			"key":  {Role: "key", Parse: parseKey},
			"meta": {Role: "meta", Parse: parseMeta},
			// Tags and audio read the same file; only the decoded PCM is
			// too large to keep around.
			"tags":  {Role: "audio", Parse: parseTags},
			"audio": {Role: "audio", Uncached: true, Parse: parseAudio},
		},
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

// parseKey reads the single-line global key annotation, e.g.
// "D major".
func parseKey(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return nil, nil
	}
	return key, nil
}

func parseMeta(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track metadata: %w", err)
	}
	var m TrackMeta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

func parseTags(path string) (any, error) {
	tags, err := audioio.ReadTags(path)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func parseAudio(path string) (any, error) {
	a, err := audioio.ReadMP3(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Track is one excerpt.
type Track struct {
	*dataset.Track
}

// Track returns the typed view for id.
func (d *Dataset) Track(id string) (*Track, error) {
	tr, err := d.Dataset.Track(id)
	if err != nil {
		return nil, err
	}
	return &Track{Track: tr}, nil
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

// Key returns the annotated global key, or "" when the annotation is
// absent.
func (t *Track) Key() (string, error) {
	v, err := t.Load("key")
	if err != nil || v == nil {
		return "", err
	}
	return v.(string), nil
}

// Meta returns the Beatport metadata, or nil when the track carries
// none.
func (t *Track) Meta() (*TrackMeta, error) {
	v, err := t.Load("meta")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*TrackMeta), nil
}

// Tags returns the metadata embedded in the mp3 itself.
func (t *Track) Tags() (*audioio.Tags, error) {
	v, err := t.Load("tags")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*audioio.Tags), nil
}

// Audio returns the excerpt audio, decoded fresh on every call.
func (t *Track) Audio() (*audioio.Audio, error) {
	v, err := t.Load("audio")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*audioio.Audio), nil
}
