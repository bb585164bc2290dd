package wav

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/MrWong99/wavetrain/pkg/decode"
)

// writeWAV writes a 16-bit PCM WAV file with the given raw integer samples.
// For multi-channel data the samples are interleaved.
func writeWAV(t *testing.T, path string, rate, channels int, samples []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	enc := gowav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func TestDecode_MonoScaling(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mono.wav")
	raw := []int{0, 1, -1, 16384, -16384, 32767, -32768}
	writeWAV(t, path, 16000, 1, raw)

	samples, rate, err := New().Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if len(samples) != len(raw) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(raw))
	}
	for i, v := range raw {
		want := float32(v) / 32768
		if samples[i] != want {
			t.Errorf("samples[%d] = %f, want %f", i, samples[i], want)
		}
	}
}

func TestDecode_StereoDownmix(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// Interleaved L/R pairs.
	writeWAV(t, path, 44100, 2, []int{1000, 3000, -2000, 4000})

	samples, rate, err := New().Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rate != 44100 {
		t.Errorf("sample rate = %d, want 44100", rate)
	}
	want := []float32{4000.0 / 65536, 2000.0 / 65536}
	if len(samples) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("samples[%d] = %f, want %f", i, samples[i], want[i])
		}
	}
}

func TestDecode_MissingFile(t *testing.T) {
	t.Parallel()
	_, _, err := New().Decode(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	var decErr *decode.Error
	if !errors.As(err, &decErr) {
		t.Fatalf("error type = %T, want *decode.Error", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got: %v", err)
	}
}

func TestDecode_NotAWaveFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not audio"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, _, err := New().Decode(path)
	if err == nil {
		t.Fatal("expected error for invalid container, got nil")
	}
	var decErr *decode.Error
	if !errors.As(err, &decErr) {
		t.Fatalf("error type = %T, want *decode.Error", err)
	}
	if decErr.Path != path {
		t.Errorf("error path = %q, want %q", decErr.Path, path)
	}
}
