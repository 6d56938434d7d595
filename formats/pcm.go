// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// pcmReader is the part of the go-audio WAV and AIFF decoders used here.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// intSource adapts a go-audio integer PCM decoder to audio.Source.
type intSource struct {
	dec      pcmReader
	format   *goaudio.Format
	bitDepth int
	closer   io.Closer
	buf      *goaudio.IntBuffer
	eof      bool
}

func newIntSource(dec pcmReader, format *goaudio.Format, bitDepth int) *intSource {
	return &intSource{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 4096),
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *intSource) SampleRate() int { return s.format.SampleRate }
func (s *intSource) Channels() int   { return s.format.NumChannels }
func (s *intSource) BufSize() int    { return cap(s.buf.Data) }

func (s *intSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *intSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("pcm read: %w", err)
	}

	scale := 1 / float32(int(1)<<(s.bitDepth-1))
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) * scale
	}

	// go-audio signals the end with a short read
	if n < len(dst) || err == io.EOF {
		s.eof = true
		return n, io.EOF
	}

	return n, nil
}
