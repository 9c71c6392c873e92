package audioio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// Audio holds decoded PCM: interleaved float64 samples scaled to
// [-1, 1].
type Audio struct {
	SampleRate int
	Channels   int
	Samples    []float64
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate == 0 || a.Channels == 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.Channels) / float64(a.SampleRate)
}

// ReadWAV decodes a PCM wav file in full. Callers wanting to avoid
// holding large buffers expose this through an uncached track
// property.
func ReadWAV(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if buf.Format == nil {
		return nil, fmt.Errorf("decode wav %s: no format chunk", path)
	}

	scale := 1.0
	if dec.BitDepth > 1 {
		scale = float64(uint64(1) << (dec.BitDepth - 1))
	}
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}
	return &Audio{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		Samples:    samples,
	}, nil
}

// ReadMP3 decodes an mp3 file in full. The decoder always emits
// 16-bit stereo at the source sample rate.
func ReadMP3(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read mp3: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decode mp3 %s: %w", path, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3 %s: %w", path, err)
	}

	// Little-endian int16 frames, two channels.
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float64(v) / 32768
	}
	return &Audio{SampleRate: dec.SampleRate(), Channels: 2, Samples: samples}, nil
}

// Tags is the slice of embedded audio metadata the loaders care
// about.
type Tags struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
}

// ReadTags reads metadata embedded in an audio file (ID3v1/v2, vorbis
// comments, MP4 atoms). A file carrying no tags yields the zero Tags
// rather than an error.
func ReadTags(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return &Tags{}, nil
		}
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}
	return &Tags{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  m.Genre(),
		Year:   m.Year(),
	}, nil
}
