// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/sfpitch/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		register string
		lookup   string
		found    bool
	}{
		{"exact", "wav", "wav", true},
		{"upper case lookup", "wav", "WAV", true},
		{"dotted extension", "ogg", ".ogg", true},
		{"dotted registration", ".aiff", "aiff", true},
		{"missing", "mp3", "flac", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRegistry()
			d := &stubDecoder{name: tt.register}
			r.Register(tt.register, d)

			got, ok := r.Get(tt.lookup)
			if ok != tt.found {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.lookup, ok, tt.found)
			}
			if ok && got != d {
				t.Errorf("Get(%q) returned a different decoder", tt.lookup)
			}
		})
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first, second := &stubDecoder{name: "a"}, &stubDecoder{name: "b"}
	r.Register("wav", first)
	r.Register("WAV", second)

	got, _ := r.Get("wav")
	if got != second {
		t.Error("Register did not replace the earlier decoder")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, f := range []string{"ogg", "WAV", "mp3", ".aif"} {
		r.Register(f, &stubDecoder{name: f})
	}

	want := []string{"aif", "mp3", "ogg", "wav"}
	if got := r.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	d := &stubDecoder{name: "wav"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() { r.Register("wav", d) })
		wg.Go(func() { _, _ = r.Get("wav") })
		wg.Go(func() { _ = r.Formats() })
	}
	wg.Wait()

	if got, ok := r.Get("wav"); !ok || got != d {
		t.Error("registry lost the decoder under concurrent access")
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	r := NewRegistry()
	r.Register("wav", &stubDecoder{name: "wav"})

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Get("wav")
	}
}
