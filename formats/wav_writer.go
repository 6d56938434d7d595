// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/sfpitch/internal/dsp"
)

// WAVWriter encodes float32 blocks as 16-bit PCM WAV. The header sizes are
// patched on Close, so w must be seekable.
type WAVWriter struct {
	enc      *wav.Encoder
	channels int
	buf      *goaudio.IntBuffer
	frames   int64
}

func NewWAVWriter(w io.WriteSeeker, sampleRate, channels int) *WAVWriter {
	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}

	return &WAVWriter{
		enc:      wav.NewEncoder(w, sampleRate, 16, channels, 1),
		channels: channels,
		buf:      &goaudio.IntBuffer{Format: format, SourceBitDepth: 16},
	}
}

// Write encodes interleaved samples. Values outside [-1, 1] are clipped.
func (w *WAVWriter) Write(samples []float32) error {
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrInvalidChannels, len(samples), w.channels)
	}

	w.buf.Data = w.buf.Data[:0]
	for _, x := range samples {
		w.buf.Data = append(w.buf.Data, int(dsp.Float32ToInt16(x)))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav write: %w", err)
	}
	w.frames += int64(len(samples) / w.channels)

	return nil
}

// WriteStereo interleaves left and right and encodes them. It matches the
// signature of a sequence.Sink for a stereo writer.
func (w *WAVWriter) WriteStereo(left, right []float32) error {
	if w.channels != 2 || len(left) != len(right) {
		return fmt.Errorf("%w: stereo block on %d channels", ErrInvalidChannels, w.channels)
	}

	w.buf.Data = w.buf.Data[:0]
	for i := range left {
		w.buf.Data = append(w.buf.Data, int(dsp.Float32ToInt16(left[i])), int(dsp.Float32ToInt16(right[i])))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav write: %w", err)
	}
	w.frames += int64(len(left))

	return nil
}

// Frames reports how many frames have been written.
func (w *WAVWriter) Frames() int64 { return w.frames }

// Close finalizes the header. It does not close the underlying writer.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav close: %w", err)
	}
	return nil
}
