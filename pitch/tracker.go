// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sfpitch/audio"
)

// Estimate is the pitch of one analysis window.
type Estimate struct {
	// Time of the window start in seconds from the start of the stream.
	Time      float64
	Frequency float64
	Clarity   float64
}

// Tracker runs a Detector over successive windows of a stream. Multichannel
// input is averaged to mono and resampled to the detector's rate when the
// rates differ.
type Tracker struct {
	det     *Detector
	windows *audio.Windower
}

// NewTracker reads src in windows of det.WindowSize() samples spaced hop
// samples apart.
func NewTracker(src audio.Source, det *Detector, hop int) (*Tracker, error) {
	if hop <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHop, hop)
	}

	var s audio.Source = src
	if s.Channels() > 1 {
		s = audio.NewMonoMixer(s)
	}
	if s.SampleRate() != det.SampleRate() {
		s = audio.NewResampler(s, det.SampleRate())
	}

	w, err := audio.NewWindower(s, det.WindowSize(), hop)
	if err != nil {
		return nil, err
	}

	return &Tracker{det: det, windows: w}, nil
}

// Next analyzes the next window. It returns io.EOF when the stream has no
// complete window left.
func (t *Tracker) Next() (Estimate, error) {
	win, start, err := t.windows.Next()
	if err != nil {
		return Estimate{}, err
	}

	p, err := t.det.Detect(win)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		Time:      float64(start) / float64(t.det.SampleRate()),
		Frequency: p.Frequency,
		Clarity:   p.Clarity,
	}, nil
}

// All drains the stream.
func (t *Tracker) All() ([]Estimate, error) {
	var out []Estimate
	for {
		e, err := t.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}

// Close closes the underlying source.
func (t *Tracker) Close() error { return t.windows.Close() }
