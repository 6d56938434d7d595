// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/sfpitch/audio"
)

// oggReader is the part of oggvorbis.Reader used here. Read fills an
// interleaved buffer and reports the number of values written.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec oggReader
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }
func (s *vorbisSource) BufSize() int    { return 4096 }
func (s *vorbisSource) Close() error    { return nil }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	if len(dst)%ch != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) {
		m, err := s.dec.Read(dst[n:])
		n += m
		if err == io.EOF {
			return n, io.EOF
		}
		if err != nil {
			return n, fmt.Errorf("vorbis read: %w", err)
		}
		if m == 0 {
			break
		}
	}

	return n, nil
}

// Vorbis decodes Ogg Vorbis streams.
type Vorbis struct{}

func (Vorbis) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ogg vorbis: %w", err)
	}
	return &vorbisSource{dec: dec}, nil
}
