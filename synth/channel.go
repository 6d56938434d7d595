// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/sfpitch/soundfont"
)

const (
	defaultVolume     = 100
	defaultExpression = 127
	centerPan         = 64
	bendRange         = 2 // semitones each way
)

// channel is one program slot and its controller state.
type channel struct {
	program *soundfont.Preset

	// bankSelect is the bank latched by CC0/CC32 for the next program change.
	bankSelect uint16

	volume     uint8
	expression uint8
	pan        uint8
	pedal      bool
	bend       float64
}

func (c *channel) reset(index int) {
	program := c.program
	*c = channel{program: program}
	if index == percussionChannel {
		c.bankSelect = percussionBank
	}
	c.resetControllers()
}

func (c *channel) resetControllers() {
	c.volume = defaultVolume
	c.expression = defaultExpression
	c.pan = centerPan
	c.pedal = false
	c.bend = 1
}

// setBend takes a signed 14 bit pitch wheel value.
func (c *channel) setBend(value int16) {
	semis := float64(value) / 8192 * bendRange
	c.bend = math.Exp2(semis / 12)
}

// gains returns the left and right multipliers for the channel's volume,
// expression and balance. At the default controller values the balance is
// unity on both sides.
func (c *channel) gains() (float64, float64) {
	vol := float64(c.volume) / 127
	expr := float64(c.expression) / 127
	g := vol * vol * expr * expr

	p := clamp((float64(c.pan)-centerPan)/63, -1, 1)
	return g * (1 - math.Max(p, 0)), g * (1 + math.Min(p, 0))
}
