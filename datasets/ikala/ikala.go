package ikala

import (
	"bufio"
	_ "embed"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"mircorpus/annotations"
	"mircorpus/audioio"
	"mircorpus/dataset"
)

// Name is the registry identifier.
const Name = "ikala"

//go:embed ikala_index_2.0.json
var indexJSON []byte

// pitchHop is the iKala pitch label frame period in seconds; values
// are timestamped at frame centers.
const pitchHop = 0.032

const citation = `Chan, T., Yeh, T., Fan, Z., Chen, H., Su, L., Yang, Y., Jang, R.
"Vocal activity informed singing voice separation with the iKala
dataset". IEEE International Conference on Acoustics, Speech and Signal
Processing, 2015.`

const downloadNote = `The iKala dataset is no longer distributed. If you obtained a
copy while it was, unpack it so Wavfile/, PitchLabel/ and Lyrics/ sit
directly under the dataset root.`

// Dataset is iKala: karaoke excerpts with vocals and accompaniment on
// separate stereo channels, vocal pitch labels and time-aligned
// lyrics.
type Dataset struct {
	*dataset.Dataset
}

// New builds the dataset rooted at root, with "" meaning the default
// location.
func New(root string) (*Dataset, error) {
	idx, err := dataset.ParseIndex(indexJSON)
	if err != nil {
		return nil, fmt.Errorf("ikala: bundled index: %w", err)
	}
	d, err := dataset.New(dataset.Config{
		Name:    Name,
		Version: "2.0",
		Root:    root,
		Index:   idx,
		Properties: map[string]dataset.Property{
			"f0":     {Role: "pitch", Parse: parsePitch},
			"lyrics": {Role: "lyrics", Parse: parseLyrics},
			"audio":  {Role: "audio", Uncached: true, Parse: parseAudio},
		},
		Metadata:     loadIDMapping,
		DownloadNote: downloadNote,
		Citation:     citation,
		License:      "Research use only, redistribution prohibited",
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

// parsePitch reads a .pv file, one MIDI semitone value per line at a
// fixed hop, 0 marking unvoiced frames, and converts to an F0 contour
// in Hz.
func parsePitch(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read pitch: %w", err)
	}
	defer f.Close()

	data := &annotations.F0Data{}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		semitone, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: line %d: %w", path, line, err)
		}
		hz := 0.0
		if semitone > 0 {
			hz = 440 * math.Pow(2, (semitone-69)/12)
		}
		frame := len(data.Times)
		data.Times = append(data.Times, float64(frame)*pitchHop+pitchHop/2)
		data.Frequencies = append(data.Frequencies, hz)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pitch %s: %w", path, err)
	}
	if len(data.Times) == 0 {
		return nil, nil
	}
	return data, nil
}

func parseLyrics(path string) (any, error) {
	l, err := annotations.ParseLyrics(path)
	if err != nil || l == nil {
		return nil, err
	}
	return l, nil
}

func parseAudio(path string) (any, error) {
	a, err := audioio.ReadWAV(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Track is one karaoke excerpt. The id encodes the song and the
// excerpted section, as in "10161_chorus".
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

// SongID returns the song part of the id.
func (t *Track) SongID() string {
	id, _, _ := strings.Cut(t.ID, "_")
	return id
}

// Section returns the excerpted section, "verse" or "chorus".
func (t *Track) Section() string {
	_, section, _ := strings.Cut(t.ID, "_")
	return section
}

// SingerID returns the singer from the id mapping table, or "" when
// the table is absent.
func (t *Track) SingerID() (string, error) {
	v, err := t.ds.Metadata()
	if err != nil || v == nil {
		return "", err
	}
	return v.(map[string]string)[t.ID], nil
}

// F0 returns the vocal pitch contour.
func (t *Track) F0() (*annotations.F0Data, error) {
	v, err := t.Load("f0")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.F0Data), nil
}

// Lyrics returns the time-aligned transcript.
func (t *Track) Lyrics() (*annotations.LyricData, error) {
	v, err := t.Load("lyrics")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*annotations.LyricData), nil
}

// Audio returns the raw stereo excerpt: accompaniment left, vocals
// right. Decoded fresh on every call.
func (t *Track) Audio() (*audioio.Audio, error) {
	v, err := t.Load("audio")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*audioio.Audio), nil
}

// InstrumentalAudio returns the accompaniment channel as mono.
func (t *Track) InstrumentalAudio() (*audioio.Audio, error) {
	return t.channel(0)
}

// VocalAudio returns the vocal channel as mono.
func (t *Track) VocalAudio() (*audioio.Audio, error) {
	return t.channel(1)
}

// MixAudio returns the two channels summed to mono.
func (t *Track) MixAudio() (*audioio.Audio, error) {
	a, err := t.Audio()
	if err != nil || a == nil {
		return nil, err
	}
	if a.Channels != 2 {
		return nil, fmt.Errorf("ikala %s: want stereo audio, got %d channels", t.ID, a.Channels)
	}
	mix := &audioio.Audio{SampleRate: a.SampleRate, Channels: 1, Samples: make([]float64, len(a.Samples)/2)}
	for i := range mix.Samples {
		mix.Samples[i] = (a.Samples[2*i] + a.Samples[2*i+1]) / 2
	}
	return mix, nil
}

func (t *Track) channel(ch int) (*audioio.Audio, error) {
	a, err := t.Audio()
	if err != nil || a == nil {
		return nil, err
	}
	if a.Channels != 2 {
		return nil, fmt.Errorf("ikala %s: want stereo audio, got %d channels", t.ID, a.Channels)
	}
	out := &audioio.Audio{SampleRate: a.SampleRate, Channels: 1, Samples: make([]float64, len(a.Samples)/2)}
	for i := range out.Samples {
		out.Samples[i] = a.Samples[2*i+ch]
	}
	return out, nil
}
