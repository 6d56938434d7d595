// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"context"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
)

// MaxTail bounds the release tail rendered after the last event, in seconds.
const MaxTail = 10

// Player is the engine side of playback; *synth.Synth satisfies it.
type Player interface {
	Dispatch(msg midi.Message) bool
	Render(left, right []float32)
	SampleRate() int
	ActiveVoices() int
}

// Sink receives rendered blocks. The slices are reused after it returns.
type Sink func(left, right []float32) error

// Play renders seq through p in blocks of at most blockSize frames. A block
// ends early wherever an event falls, so every message is applied on its
// exact frame. After the last event playback continues until every voice
// has finished or MaxTail seconds have passed.
func Play(ctx context.Context, seq *Sequence, p Player, blockSize int, sink Sink) error {
	if blockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	rate := float64(p.SampleRate())
	left := make([]float32, blockSize)
	right := make([]float32, blockSize)

	var frame int64
	render := func(until int64) error {
		for frame < until {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := int(min(int64(blockSize), until-frame))
			p.Render(left[:n], right[:n])
			if err := sink(left[:n], right[:n]); err != nil {
				return err
			}
			frame += int64(n)
		}
		return nil
	}

	for i := 0; i < len(seq.Events); {
		at := int64(math.Round(seq.Events[i].Time * rate))
		if err := render(at); err != nil {
			return err
		}
		for ; i < len(seq.Events) && int64(math.Round(seq.Events[i].Time*rate)) <= frame; i++ {
			p.Dispatch(seq.Events[i].Message)
		}
	}

	limit := frame + int64(MaxTail*rate)
	for p.ActiveVoices() > 0 && frame < limit {
		if err := render(min(frame+int64(blockSize), limit)); err != nil {
			return err
		}
	}

	return nil
}
