package orchset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"mircorpus/dataset"
)

const metadataCSV = `track_id,composer,work,excerpt,predominant_instruments,alternating_melody,contains_winds,contains_strings,contains_brass,only_winds,only_strings,only_brass
Beethoven-S3-I-ex1,Beethoven,Symphony no. 3 (1st mov.),1,violin+flute,false,true,true,false,false,false,false
Brahms-S3-III-ex1,Brahms,Symphony no. 3 (3rd mov.),1,cello,false,false,true,false,false,true,false
`

func TestNew(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := d.Root(), filepath.Join(dataset.DefaultRoot(), Name); got != want {
		t.Errorf("Root = %q, want %q", got, want)
	}
	ids := d.TrackIDs()
	if len(ids) != 6 {
		t.Fatalf("got %d tracks, want 6", len(ids))
	}
	if ids[0] != "Beethoven-S3-I-ex1" {
		t.Errorf("ids[0] = %q", ids[0])
	}
	want := []string{"audio_mono", "audio_stereo", "melody"}
	if got := d.PropertyNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("PropertyNames = %v, want %v", got, want)
	}
	if d.License() == "" || d.Citation() == "" {
		t.Error("license and citation must be carried")
	}
	if got := d.RemoteNames(); !reflect.DeepEqual(got, []string{"all"}) {
		t.Errorf("RemoteNames = %v", got)
	}
}

func TestRegistered(t *testing.T) {
	root := t.TempDir()
	d, err := dataset.Initialize(Name, root)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if d.Name() != Name || d.Root() != root {
		t.Errorf("Initialize returned %q at %q", d.Name(), d.Root())
	}
}

func TestTrackMelody(t *testing.T) {
	root := t.TempDir()
	melody := "0.000 0.0\n0.010 391.995\n0.020 392.102\n"
	mustWrite(t, filepath.Join(root, "GT", "Beethoven-S3-I-ex1.mel"), melody)

	d, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr, err := d.Track("Beethoven-S3-I-ex1")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}

	f0, err := tr.Melody()
	if err != nil {
		t.Fatalf("Melody: %v", err)
	}
	if len(f0.Times) != 3 {
		t.Fatalf("got %d frames, want 3", len(f0.Times))
	}
	if f0.Frequencies[1] != 391.995 {
		t.Errorf("Frequencies[1] = %v", f0.Frequencies[1])
	}

	again, err := tr.Melody()
	if err != nil {
		t.Fatalf("Melody again: %v", err)
	}
	if f0 != again {
		t.Error("melody is cached, both loads must return the same value")
	}
}

func TestTrackAudio(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "audio_mono", "Brahms-S3-III-ex1.wav")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           []int{0, 8192, -8192},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	d, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr, err := d.Track("Brahms-S3-III-ex1")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	a, err := tr.AudioMono()
	if err != nil {
		t.Fatalf("AudioMono: %v", err)
	}
	if a.SampleRate != 44100 || a.Channels != 1 || len(a.Samples) != 3 {
		t.Errorf("audio = %d Hz %d ch %d samples", a.SampleRate, a.Channels, len(a.Samples))
	}
}

func TestTrackMeta(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, metadataFile), metadataCSV)

	d, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr, err := d.Track("Beethoven-S3-I-ex1")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}

	m, err := tr.Meta()
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if m == nil {
		t.Fatal("Meta returned nil for an annotated track")
	}
	if m.Composer != "Beethoven" {
		t.Errorf("Composer = %q", m.Composer)
	}
	if want := []string{"violin", "flute"}; !reflect.DeepEqual(m.PredominantInstruments, want) {
		t.Errorf("PredominantInstruments = %v, want %v", m.PredominantInstruments, want)
	}
	if !m.ContainsWinds || m.OnlyBrass {
		t.Errorf("flags parsed wrong: %+v", m)
	}
}

func TestTrackMetaAbsentTable(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr, err := d.Track("Haydn-S94-Menuet-ex1")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	m, err := tr.Meta()
	if m != nil || err != nil {
		t.Errorf("Meta = (%v, %v), want (nil, nil) without a table", m, err)
	}
}

func TestReadMetadataMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), metadataFile)
	mustWrite(t, path, "Beethoven-S3-I-ex1,Beethoven,work,1,violin,maybe,true,true,false,false,false,false\n")
	if _, err := ReadMetadata(path); err == nil {
		t.Fatal("expected error for a non-boolean flag")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
