// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/sfpitch/internal/dsp"
)

// State is the externally visible phase of a voice.
type State uint8

const (
	Finished State = iota
	Attack
	Sustain
	Release
)

func (s State) String() string {
	switch s {
	case Attack:
		return "attack"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	default:
		return "finished"
	}
}

type envStage uint8

const (
	stageDelay envStage = iota
	stageAttack
	stageHold
	stageDecay
	stageSustain
	stageRelease
	stageDone
)

// silence is -100 dB, the level at which decay and release end.
const silence = 1e-5

// fastRelease is the release time of exclusive-class cuts, in seconds.
// Stolen voices are restarted in place without a fade.
const fastRelease = 0.005

// envelope is the SoundFont volume envelope: delay, linear attack, hold,
// exponential (linear in dB) decay to sustain, exponential release.
type envelope struct {
	stage     envStage
	level     float64
	remaining int

	attackStep  float64
	hold        int
	decayCoef   float64
	sustain     float64
	releaseCoef float64
}

type envParams struct {
	delay, attack, hold, decay, release float64 // timecents
	sustain                             float64 // centibels of attenuation
}

func samplesFor(tc float64, rate int, instantBelow float64) int {
	if tc <= instantBelow {
		return 0
	}
	return int(math.Round(dsp.TimecentsToSeconds(tc) * float64(rate)))
}

// coefFor returns the per-sample multiplier that falls 100 dB in n samples.
func coefFor(n int) float64 {
	return math.Pow(silence, 1/float64(max(n, 1)))
}

func (e *envelope) start(p envParams, rate int) {
	delay := samplesFor(clamp(p.delay, -12000, 5000), rate, -12000)
	attack := max(samplesFor(clamp(p.attack, -12000, 8000), rate, math.Inf(-1)), 1)

	*e = envelope{
		stage:       stageDelay,
		remaining:   delay,
		attackStep:  1 / float64(attack),
		hold:        samplesFor(clamp(p.hold, -12000, 5000), rate, -12000),
		decayCoef:   coefFor(samplesFor(clamp(p.decay, -12000, 8000), rate, math.Inf(-1))),
		sustain:     dsp.CentibelsToGain(clamp(p.sustain, 0, 1440)),
		releaseCoef: coefFor(samplesFor(clamp(p.release, -12000, 8000), rate, math.Inf(-1))),
	}
	if delay == 0 {
		e.stage = stageAttack
	}
}

// next returns the gain for the current sample and advances one sample.
func (e *envelope) next() float64 {
	switch e.stage {
	case stageDelay:
		e.remaining--
		if e.remaining <= 0 {
			e.stage = stageAttack
		}
		return 0

	case stageAttack:
		e.level += e.attackStep
		if e.level >= 1 {
			e.level = 1
			e.stage = stageHold
			e.remaining = e.hold
			if e.hold == 0 {
				e.stage = stageDecay
			}
		}
		return e.level

	case stageHold:
		e.remaining--
		if e.remaining <= 0 {
			e.stage = stageDecay
		}
		return e.level

	case stageDecay:
		e.level *= e.decayCoef
		if e.level <= e.sustain {
			e.level = e.sustain
			e.stage = stageSustain
		}
		if e.level < silence {
			e.finish()
		}
		return e.level

	case stageSustain:
		return e.level

	case stageRelease:
		e.level *= e.releaseCoef
		if e.level < silence {
			e.finish()
		}
		return e.level
	}

	return 0
}

func (e *envelope) release() {
	if e.stage == stageDone || e.stage == stageRelease {
		return
	}
	if e.level < silence {
		e.finish()
		return
	}
	e.stage = stageRelease
}

// cut releases over fastRelease seconds regardless of the programmed release.
func (e *envelope) cut(rate int) {
	e.releaseCoef = coefFor(int(fastRelease * float64(rate)))
	e.release()
}

func (e *envelope) finish() {
	e.stage = stageDone
	e.level = 0
}

func (e *envelope) state() State {
	switch e.stage {
	case stageDone:
		return Finished
	case stageSustain:
		return Sustain
	case stageRelease:
		return Release
	default:
		return Attack
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
