// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// TimecentsToSeconds converts an absolute SoundFont timecent value to seconds.
func TimecentsToSeconds(tc float64) float64 {
	return math.Exp2(tc / 1200)
}

// CentibelsToGain converts an attenuation in centibels into a linear gain.
// Negative attenuation is treated as zero.
func CentibelsToGain(cb float64) float64 {
	if cb <= 0 {
		return 1
	}
	return math.Pow(10, -cb/200)
}

// CentsToRatio converts a pitch offset in cents into a frequency ratio.
func CentsToRatio(cents float64) float64 {
	return math.Exp2(cents / 1200)
}

// AbsoluteCentsToHz converts SoundFont absolute cents (8.176 Hz reference) to Hz.
func AbsoluteCentsToHz(cents float64) float64 {
	return 8.176 * math.Exp2(cents/1200)
}

// KeyToHz returns the equal-tempered frequency of a MIDI key with A4 = 440 Hz.
func KeyToHz(key float64) float64 {
	return 440 * math.Exp2((key-69)/12)
}

// HzToKey is the inverse of KeyToHz; it returns a fractional key number.
func HzToKey(hz float64) float64 {
	return 69 + 12*math.Log2(hz/440)
}
