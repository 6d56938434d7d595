// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/sfpitch/internal/dsp"
)

// bypassCents is the initialFilterFc value at and above which the filter is
// left out of the signal path.
const bypassCents = 13500

// lowpass is a resonant two-pole filter (RBJ cookbook) in transposed direct
// form II. State is float64 so long tails do not drift.
type lowpass struct {
	active     bool
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

// setup configures the filter for a cutoff in absolute cents and a resonance
// in centibels, as carried by initialFilterFc and initialFilterQ.
func (f *lowpass) setup(cutoffCents, resonanceCb float64, rate int) {
	*f = lowpass{}
	if cutoffCents >= bypassCents {
		return
	}

	hz := dsp.AbsoluteCentsToHz(clamp(cutoffCents, 1500, bypassCents))
	hz = math.Min(hz, 0.45*float64(rate))

	q := math.Pow(10, clamp(resonanceCb, 0, 960)/200) * math.Sqrt2 / 2
	w0 := 2 * math.Pi * hz / float64(rate)
	sin, cos := math.Sincos(w0)
	alpha := sin / (2 * q)
	a0 := 1 + alpha

	f.b1 = (1 - cos) / a0
	f.b0 = f.b1 / 2
	f.b2 = f.b0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
	f.active = true
}

func (f *lowpass) process(x float64) float64 {
	if !f.active {
		return x
	}
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}
