// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Windower cuts a mono source into overlapping windows of a fixed size,
// advancing by hop samples between windows. A trailing partial window is
// dropped.
type Windower struct {
	src  Source
	size int
	hop  int

	buf    []float32
	filled int
	skip   int
	start  int64 // source sample index of buf[0]
	first  bool
	eof    bool
}

// NewWindower wraps src, which must be mono; wrap it in a MonoMixer first
// otherwise.
func NewWindower(src Source, size, hop int) (*Windower, error) {
	if size <= 0 || hop <= 0 {
		return nil, fmt.Errorf("%w: size %d hop %d", ErrInvalidWindow, size, hop)
	}

	return &Windower{
		src:   src,
		size:  size,
		hop:   hop,
		buf:   make([]float32, size),
		first: true,
	}, nil
}

// Next returns the next window and the index of its first sample. The slice
// is reused by the following call. io.EOF is returned once no complete
// window remains.
func (w *Windower) Next() ([]float32, int64, error) {
	if !w.first {
		shift := min(w.hop, w.filled)
		copy(w.buf, w.buf[shift:w.filled])
		w.filled -= shift
		w.skip = w.hop - shift
		w.start += int64(w.hop)
	}
	w.first = false

	// a hop longer than the window drops the samples in between
	for w.skip > 0 && !w.eof {
		n, err := w.read(w.buf[:min(w.skip, len(w.buf))])
		if err != nil {
			return nil, w.start, err
		}
		w.skip -= n
	}

	for w.filled < w.size && !w.eof {
		n, err := w.read(w.buf[w.filled:w.size])
		if err != nil {
			return nil, w.start, err
		}
		w.filled += n
	}

	if w.skip > 0 || w.filled < w.size {
		return nil, w.start, io.EOF
	}

	return w.buf[:w.size], w.start, nil
}

func (w *Windower) read(dst []float32) (int, error) {
	n, err := w.src.ReadSamples(dst)
	switch {
	case errors.Is(err, io.EOF):
		w.eof = true
	case err != nil:
		return n, fmt.Errorf("windower read: %w", err)
	case n == 0:
		return 0, io.ErrNoProgress
	}
	return n, nil
}

func (w *Windower) SampleRate() int { return w.src.SampleRate() }

func (w *Windower) Close() error {
	if err := w.src.Close(); err != nil {
		return fmt.Errorf("closing windower source: %w", err)
	}
	return nil
}
