// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ik5/sfpitch/internal/dsp"
)

const (
	// PowerThreshold is the minimum sum of squares a window needs before any
	// pitch is reported.
	PowerThreshold = 5.0
	// ClarityThreshold is the minimum normalized peak height accepted as a
	// pitch.
	ClarityThreshold = 0.6
)

// Pitch is a detection result. A zero Frequency means no confident pitch.
type Pitch struct {
	Frequency float64
	Clarity   float64
}

// Detector runs the McLeod Pitch Method over fixed size windows.
//
// The FFT plan and scratch buffers are sized at construction and reused, so
// detection does not allocate and a Detector must not be shared between
// goroutines.
type Detector struct {
	sampleRate int
	size       int

	fft    *fourier.FFT
	padded []float64    // window zero padded to a power of two
	power  []complex128 // half spectrum, squared in place
	acf    []float64    // unnormalized autocorrelation
	nsdf   []float64    // lags [0, size/2)
}

// New returns a detector for windows of windowSize samples at sampleRate Hz.
// windowSize must be even: the upper half of the autocorrelation is padding.
func New(sampleRate, windowSize int) (*Detector, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if windowSize < 4 || windowSize%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, windowSize)
	}

	n := 1 << bits.Len(uint(windowSize+windowSize/2-1))

	return &Detector{
		sampleRate: sampleRate,
		size:       windowSize,
		fft:        fourier.NewFFT(n),
		padded:     make([]float64, n),
		power:      make([]complex128, n/2+1),
		acf:        make([]float64, n),
		nsdf:       make([]float64, windowSize/2),
	}, nil
}

// SampleRate returns the rate the detector converts lags with.
func (d *Detector) SampleRate() int { return d.sampleRate }

// WindowSize returns the number of samples each call consumes.
func (d *Detector) WindowSize() int { return d.size }

// DetectPitch returns the fundamental frequency of window in Hz, or 0 when no
// pitch is confident enough. The window must hold exactly WindowSize
// samples: a shorter one fails with ErrInsufficientSamples and a longer one
// with ErrWindowLength.
func (d *Detector) DetectPitch(window []float32) (float32, error) {
	p, err := d.Detect(window)
	return float32(p.Frequency), err
}

// Detect is DetectPitch that also reports the clarity of the chosen peak.
func (d *Detector) Detect(window []float32) (Pitch, error) {
	if len(window) < d.size {
		return Pitch{}, fmt.Errorf("%w: got %d samples, want %d", ErrInsufficientSamples, len(window), d.size)
	}
	if len(window) > d.size {
		return Pitch{}, fmt.Errorf("%w: got %d samples, want %d", ErrWindowLength, len(window), d.size)
	}

	var energy float64
	for _, x := range window {
		energy += float64(x) * float64(x)
	}
	if energy < PowerThreshold {
		return Pitch{}, nil
	}

	d.normalizedSquareDifference(window, energy)

	lag, ok := d.choosePeak()
	if !ok {
		return Pitch{}, nil
	}

	offset, height := 0.0, d.nsdf[lag]
	if lag > 0 && lag < len(d.nsdf)-1 {
		offset, height = dsp.ParabolicPeak(d.nsdf[lag-1], d.nsdf[lag], d.nsdf[lag+1])
	}

	refined := float64(lag) + offset
	if refined <= 0 {
		return Pitch{}, nil
	}

	return Pitch{
		Frequency: float64(d.sampleRate) / refined,
		Clarity:   min(height, 1),
	}, nil
}

// normalizedSquareDifference fills d.nsdf with 2r(t)/m(t), where r is the
// autocorrelation obtained through the power spectrum and m the running sum
// of squares of the overlapping parts.
func (d *Detector) normalizedSquareDifference(window []float32, energy float64) {
	clear(d.padded)
	for i, x := range window {
		d.padded[i] = float64(x)
	}

	d.fft.Coefficients(d.power, d.padded)
	for i, c := range d.power {
		d.power[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	// the round trip scales by the transform length
	d.fft.Sequence(d.acf, d.power)
	scale := 1 / float64(len(d.acf))

	n := len(window)
	m := 2 * energy
	for tau := range d.nsdf {
		if tau > 0 {
			a, b := float64(window[tau-1]), float64(window[n-tau])
			m -= a*a + b*b
		}
		if m <= 0 {
			d.nsdf[tau] = 0
			continue
		}
		d.nsdf[tau] = 2 * d.acf[tau] * scale / m
	}
}

// choosePeak walks the key maxima of the NSDF: the highest point of every
// positive region after the first negative going zero crossing. The first
// one above ClarityThreshold wins.
func (d *Detector) choosePeak() (int, bool) {
	nsdf := d.nsdf

	tau := 0
	for tau < len(nsdf) && nsdf[tau] > 0 {
		tau++
	}

	for tau < len(nsdf) {
		for tau < len(nsdf) && nsdf[tau] <= 0 {
			tau++
		}
		best := -1
		for tau < len(nsdf) && nsdf[tau] > 0 {
			if best < 0 || nsdf[tau] > nsdf[best] {
				best = tau
			}
			tau++
		}
		if best >= 0 && nsdf[best] > ClarityThreshold {
			return best, true
		}
	}

	return 0, false
}
