// SPDX-License-Identifier: EPL-2.0

// Package pitch estimates the fundamental frequency of audio windows with
// the McLeod Pitch Method.
//
// The detector computes the normalized square difference function (NSDF) of
// the window over lags [0, size/2) through an FFT autocorrelation, takes the
// highest point of each positive lobe after the first zero crossing and
// accepts the first one above ClarityThreshold. The lag is refined by a
// parabola through the neighbouring points and converted to sample_rate/lag.
//
// A window whose energy (sum of squares) is below PowerThreshold reports 0,
// as does a window with no clear peak. 0 is a valid answer meaning "no
// pitch", not an error. A window shorter than the detector size is a caller
// bug and fails with ErrInsufficientSamples.
package pitch
