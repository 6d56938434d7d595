// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio and instrument banks for tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// Source is a finite generated stream. It satisfies audio.Source without
// importing it.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
}

// NewSource creates a stream of frames generated by wave.
func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineSource generates a full-scale sine of frequency hz on every channel.
func NewSineSource(sampleRate, channels, frames int, hz float64) *Source {
	return NewSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * hz * float64(i) / float64(sampleRate)))
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Reset rewinds the stream.
func (s *Source) Reset() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

// Sine returns n samples of amp*sin(2*pi*hz*t) at sampleRate.
func Sine(sampleRate, n int, hz, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*hz*float64(i)/float64(sampleRate)))
	}
	return out
}
