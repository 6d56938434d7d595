// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/sfpitch/internal/dsp"
	"github.com/ik5/sfpitch/soundfont"
)

// Sample loop modes (sampleModes generator).
const (
	loopNone         = 0
	loopContinuous   = 1
	loopUntilRelease = 3
)

// voice plays one region of one note. Voices live in a fixed pool owned by
// the Synth and are reused once their envelope is done.
type voice struct {
	channel int
	note    uint8 // key of the note on, before any keynum override
	seq     uint64
	class   int32

	data []float32
	pos  float64
	step float64

	start, end         int
	loopStart, loopEnd int
	loopMode           int32

	env    envelope
	filter lowpass

	gain        float64
	left, right float64

	noteOff   bool
	sustained bool
}

func (v *voice) state() State { return v.env.state() }

func (v *voice) active() bool { return v.env.stage != stageDone }

// setup binds the voice to a region. data is the bank's whole smpl chunk.
func (v *voice) setup(r *soundfont.Region, data []float32, ch, key, vel int, seq uint64, cfg *Config) {
	s := r.Sample
	note := uint8(key)
	g := func(t soundfont.GeneratorType) float64 { return float64(r.Gen(t)) }

	if k := r.Gen(soundfont.GenKeynum); k >= 0 && k <= 127 {
		key = int(k)
	}
	if vl := r.Gen(soundfont.GenVelocity); vl > 0 && vl <= 127 {
		vel = int(vl)
	}

	*v = voice{
		channel:  ch,
		note:     note,
		seq:      seq,
		class:    r.Gen(soundfont.GenExclusiveClass),
		data:     data,
		loopMode: r.Gen(soundfont.GenSampleModes),
	}

	total := len(data)
	v.start = offset(s.Start, r, soundfont.GenStartAddrsOffset, soundfont.GenStartAddrsCoarseOffset, total)
	v.end = offset(s.End, r, soundfont.GenEndAddrsOffset, soundfont.GenEndAddrsCoarseOffset, total)
	v.loopStart = offset(s.StartLoop, r, soundfont.GenStartloopAddrsOffset, soundfont.GenStartloopAddrsCoarseOffset, total)
	v.loopEnd = offset(s.EndLoop, r, soundfont.GenEndloopAddrsOffset, soundfont.GenEndloopAddrsCoarseOffset, total)
	if v.end < v.start {
		v.end = v.start
	}
	if v.loopMode != loopContinuous && v.loopMode != loopUntilRelease ||
		v.loopStart < v.start || v.loopEnd > v.end || v.loopEnd-v.loopStart < 2 {
		v.loopMode = loopNone
	}
	v.pos = float64(v.start)

	root := int(s.OriginalPitch)
	if rk := r.Gen(soundfont.GenOverridingRootKey); rk >= 0 && rk <= 127 {
		root = int(rk)
	}
	if root > 127 {
		root = 60
	}
	cents := float64(key-root)*g(soundfont.GenScaleTuning) +
		g(soundfont.GenCoarseTune)*100 + g(soundfont.GenFineTune) + float64(s.PitchCorrection)
	rate := float64(s.SampleRate)
	if rate <= 0 {
		rate = float64(cfg.SampleRate)
	}
	v.step = dsp.CentsToRatio(cents) * rate / float64(cfg.SampleRate)

	v.env.start(envParams{
		delay:   g(soundfont.GenDelayVolEnv),
		attack:  g(soundfont.GenAttackVolEnv),
		hold:    g(soundfont.GenHoldVolEnv) + float64(60-key)*g(soundfont.GenKeynumToVolEnvHold),
		decay:   g(soundfont.GenDecayVolEnv) + float64(60-key)*g(soundfont.GenKeynumToVolEnvDecay),
		sustain: g(soundfont.GenSustainVolEnv),
		release: g(soundfont.GenReleaseVolEnv),
	}, cfg.SampleRate)

	cutoff := g(soundfont.GenInitialFilterFc) - 2400*float64(127-vel)/127
	v.filter.setup(cutoff, g(soundfont.GenInitialFilterQ), cfg.SampleRate)

	velGain := float64(vel) / 127
	v.gain = velGain * velGain * dsp.CentibelsToGain(g(soundfont.GenInitialAttenuation)) * float64(cfg.Gain)

	pan := clamp(g(soundfont.GenPan), -500, 500)
	angle := (pan + 500) / 1000 * math.Pi / 2
	v.left, v.right = math.Cos(angle), math.Sin(angle)
}

// offset applies a fine+coarse address generator pair to a sample point and
// clamps the result into the smpl chunk.
func offset(base uint32, r *soundfont.Region, fine, coarse soundfont.GeneratorType, total int) int {
	p := int(base) + int(r.Gen(fine)) + 32768*int(r.Gen(coarse))
	return min(max(p, 0), total)
}

func (v *voice) looping() bool {
	switch v.loopMode {
	case loopContinuous:
		return true
	case loopUntilRelease:
		return !v.noteOff || v.sustained
	}
	return false
}

// at reads the sample point i, wrapping through the loop when it is active.
func (v *voice) at(i int, loop bool) float32 {
	if loop && i >= v.loopEnd {
		i = v.loopStart + (i-v.loopStart)%(v.loopEnd-v.loopStart)
	}
	if i < v.start || i >= v.end {
		return 0
	}
	return v.data[i]
}

// render mixes n frames into left and right. bend scales the pitch and
// lgain/rgain carry the channel volume and balance.
func (v *voice) render(left, right []float32, bend, lgain, rgain float64) {
	step := v.step * bend
	lg := v.gain * v.left * lgain
	rg := v.gain * v.right * rgain

	for i := range left {
		if !v.active() {
			return
		}

		loop := v.looping()
		idx := int(v.pos)
		frac := float32(v.pos - float64(idx))
		x := dsp.CubicInterpolate(v.at(idx-1, loop), v.at(idx, loop), v.at(idx+1, loop), v.at(idx+2, loop), frac)

		y := v.filter.process(float64(x)) * v.env.next()
		left[i] += float32(y * lg)
		right[i] += float32(y * rg)

		v.pos += step
		if loop {
			for v.pos >= float64(v.loopEnd) {
				v.pos -= float64(v.loopEnd - v.loopStart)
			}
		} else if v.pos >= float64(v.end) {
			v.env.finish()
		}
	}
}

// release handles a note off. While the channel's sustain pedal is down the
// voice keeps sounding until the pedal is lifted.
func (v *voice) release(pedal bool) {
	v.noteOff = true
	v.sustained = pedal
	if !pedal {
		v.env.release()
	}
}
