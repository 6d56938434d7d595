// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/sfpitch/audio"
)

// mp3Reader is the part of gomp3.Decoder used here.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// mp3Source converts the decoder's 16-bit little endian stereo bytes.
type mp3Source struct {
	dec mp3Reader
	buf []byte
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int   { return 2 }
func (s *mp3Source) BufSize() int    { return cap(s.buf) / 2 }
func (s *mp3Source) Close() error    { return nil }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}

	n, err := io.ReadFull(s.dec, s.buf[:need])
	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	switch err {
	case nil:
		return samples, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return samples, io.EOF
	}
	return samples, fmt.Errorf("mp3 read: %w", err)
}

// MP3 decodes MPEG-1/2 layer III streams to stereo.
type MP3 struct{}

func (MP3) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &mp3Source{dec: dec, buf: make([]byte, 8192)}, nil
}
