// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/sfpitch/audio"
)

// NewRegistry returns a registry with every decoder of this package under
// its usual file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", WAV{})
	r.Register("wave", WAV{})
	r.Register("aif", AIFF{})
	r.Register("aiff", AIFF{})
	r.Register("mp3", MP3{})
	r.Register("ogg", Vorbis{})
	r.Register("oga", Vorbis{})

	return r
}

// fileSource closes the file together with the decoded source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open decodes the file at path, choosing the decoder by its extension.
func Open(path string) (audio.Source, error) {
	return OpenWith(NewRegistry(), path)
}

// OpenWith is Open with a caller supplied registry.
func OpenWith(r *audio.Registry, path string) (audio.Source, error) {
	ext := filepath.Ext(path)
	dec, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}
