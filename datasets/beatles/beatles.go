package beatles

import (
	_ "embed"
	"fmt"

	"mircorpus/annotations"
	"mircorpus/audioio"
	"mircorpus/dataset"
	"mircorpus/download"
)

// Name is the registry identifier.
const Name = "beatles"

//go:embed beatles_index_1.2.json
var indexJSON []byte

const citation = `Mauch, M., Cannam, C., Davies, M., Dixon, S., Harte, C.,
Kolozali, S., Tidhar, D., Sandler, M. "OMRAS2 Metadata Project 2009".
10th International Society for Music Information Retrieval Conference,
2009.`

const downloadNote = `The audio itself is under copyright and is not distributed.
Rip your own copies of the albums and place them under audio/ using the
album and title layout the index expects.`

var remotes = []download.Remote{
	{
		Name:     "annotations",
		URL:      "http://isophonics.net/files/annotations/The%20Beatles%20Annotations.tar.gz",
		Filename: "The Beatles Annotations.tar.gz",
		Checksum: "33d6bec5ee51743b240620b9b40c98ea",
		Unpack:   true,
		Dest:     "annotations",
	},
}

// Dataset is the Beatles corpus: Isophonics beat, chord, key and
// section annotations over the studio albums.
type Dataset struct {
	*dataset.Dataset
}

// New builds the dataset rooted at root, with "" meaning the default
// location.
func New(root string) (*Dataset, error) {
	idx, err := dataset.ParseIndex(indexJSON)
	if err != nil {
		return nil, fmt.Errorf("beatles: bundled index: %w", err)
	}
	d, err := dataset.New(dataset.Config{
		Name:    Name,
		Version: "1.2",
		Root:    root,
		Index:   idx,
		Properties: map[string]dataset.Property{
			"beats":    {Role: "beats", Parse: parseBeats},
			"chords":   {Role: "chords", Parse: parseChords},
			"keys":     {Role: "keys", Parse: parseKeys},
			"sections": {Role: "sections", Parse: parseSections},
			"audio":    {Role: "audio", Uncached: true, Parse: parseAudio},
		},
		Remotes:      remotes,
		DownloadNote: downloadNote,
		Citation:     citation,
		License:      "Annotations are for research use only",
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

func parseBeats(path string) (any, error) {
	b, err := annotations.ParseBeats(path)
	if err != nil || b == nil {
		return nil, err
	}
	return b, nil
}

func parseChords(path string) (any, error) {
	c, err := annotations.ParseChords(path)
	if err != nil || c == nil {
		return nil, err
	}
	return c, nil
}

func parseKeys(path string) (any, error) {
	k, err := annotations.ParseKeys(path)
	if err != nil || k == nil {
		return nil, err
	}
	return k, nil
}

func parseSections(path string) (any, error) {
	s, err := annotations.ParseSections(path)
	if err != nil || s == nil {
		return nil, err
	}
	return s, nil
}

func parseAudio(path string) (any, error) {
	a, err := audioio.ReadWAV(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Track is one song.
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

// LoadTracks returns every song, keyed by id.
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

// Beats returns the beat annotation.
func (t *Track) Beats() (*annotations.BeatData, error) {
	v, err := t.Load("beats")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.BeatData), nil
}

// Chords returns the chord annotation in Harte syntax.
func (t *Track) Chords() (*annotations.ChordData, error) {
	v, err := t.Load("chords")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.ChordData), nil
}

// Keys returns the key annotation. Not every song carries one.
func (t *Track) Keys() (*annotations.KeyData, error) {
	v, err := t.Load("keys")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.KeyData), nil
}

// Sections returns the structural segmentation.
func (t *Track) Sections() (*annotations.SectionData, error) {
	v, err := t.Load("sections")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.SectionData), nil
}

// Audio returns the song audio, decoded fresh on every call.
func (t *Track) Audio() (*audioio.Audio, error) {
	v, err := t.Load("audio")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*audioio.Audio), nil
}
