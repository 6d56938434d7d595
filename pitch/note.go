// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"math"

	"github.com/ik5/sfpitch/internal/dsp"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName maps a frequency to the nearest equal tempered note (A4 = 440 Hz)
// and the deviation from it in cents, within [-50, 50). Octaves follow the
// scientific convention, MIDI key 60 being C4. Non positive frequencies give
// an empty name.
func NoteName(freq float64) (name string, octave int, cents float64) {
	if freq <= 0 || math.IsInf(freq, 0) || math.IsNaN(freq) {
		return "", 0, 0
	}

	key := dsp.HzToKey(freq)
	nearest := math.Floor(key + 0.5)
	cents = 100 * (key - nearest)

	k := int(nearest)
	idx := ((k % 12) + 12) % 12
	octave = (k-idx)/12 - 1

	return noteNames[idx], octave, cents
}
