// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the small numeric kernels shared by the synth, the pitch
// detector and the resampler.
package dsp

// CubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// ParabolicPeak fits a parabola through three equally spaced points centred
// on b and returns the offset of its vertex from b (in [-0.5, 0.5] when b is a
// local maximum) together with the interpolated height.
func ParabolicPeak(a, b, c float64) (offset, height float64) {
	denom := a - 2*b + c
	if denom == 0 {
		return 0, b
	}

	offset = 0.5 * (a - c) / denom
	height = b - 0.25*(a-c)*offset

	return offset, height
}
