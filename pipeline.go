// SPDX-License-Identifier: EPL-2.0

package sfpitch

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/sfpitch/audio"
	"github.com/ik5/sfpitch/pitch"
	"github.com/ik5/sfpitch/sequence"
	"github.com/ik5/sfpitch/soundfont"
	"github.com/ik5/sfpitch/synth"
)

// RenderSMFTo plays the Standard MIDI File read from song through a new
// synth on bank and hands every rendered block to sink.
func RenderSMFTo(ctx context.Context, bank *soundfont.Bank, song io.Reader, cfg synth.Config, blockSize int, sink sequence.Sink) error {
	seq, err := sequence.Load(song)
	if err != nil {
		return err
	}

	s, err := synth.New(bank, cfg)
	if err != nil {
		return err
	}

	if err := sequence.Play(ctx, seq, s, blockSize, sink); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	return nil
}

// RenderSMF is RenderSMFTo collecting the whole performance in memory.
func RenderSMF(ctx context.Context, bank *soundfont.Bank, song io.Reader, cfg synth.Config, blockSize int) (left, right []float32, err error) {
	err = RenderSMFTo(ctx, bank, song, cfg, blockSize, func(l, r []float32) error {
		left = append(left, l...)
		right = append(right, r...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

// TrackPitch estimates the pitch of src every hop samples using windows of
// windowSize samples. The stream is mixed to mono and, when sampleRate is
// positive and differs from the source, resampled before analysis. Times in
// the result are relative to the analysis rate.
func TrackPitch(src audio.Source, sampleRate, windowSize, hop int) ([]pitch.Estimate, error) {
	if sampleRate <= 0 {
		sampleRate = src.SampleRate()
	}

	det, err := pitch.New(sampleRate, windowSize)
	if err != nil {
		return nil, err
	}

	tr, err := pitch.NewTracker(src, det, hop)
	if err != nil {
		return nil, err
	}

	return tr.All()
}
