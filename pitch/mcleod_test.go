// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ik5/sfpitch/internal/audiotest"
)

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rate, size int
		want       error
	}{
		{"zero rate", 0, 1024, ErrInvalidSampleRate},
		{"negative rate", -44100, 1024, ErrInvalidSampleRate},
		{"odd size", 44100, 1023, ErrInvalidWindowSize},
		{"tiny size", 44100, 2, ErrInvalidWindowSize},
		{"negative size", 44100, -8, ErrInvalidWindowSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := New(tt.rate, tt.size)
			if !errors.Is(err, tt.want) {
				t.Errorf("New(%d, %d) error = %v, want %v", tt.rate, tt.size, err, tt.want)
			}
			if d != nil {
				t.Error("New returned a detector alongside an error")
			}
		})
	}
}

func TestNew_PadsToPowerOfTwo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size, want int
	}{
		{4, 8},
		{1024, 2048},
		{2048, 4096},
		{3000, 8192},
	}

	for _, tt := range tests {
		d, err := New(44100, tt.size)
		if err != nil {
			t.Fatalf("New(44100, %d) error = %v", tt.size, err)
		}
		if len(d.padded) != tt.want {
			t.Errorf("size %d padded to %d, want %d", tt.size, len(d.padded), tt.want)
		}
	}
}

func TestDetectPitch_PureTones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate int
		size int
		hz   float64
	}{
		{"A4 2048", 44100, 2048, 440},
		{"A4 1024", 44100, 1024, 440},
		{"low E", 44100, 4096, 82.41},
		{"high C", 44100, 1024, 1046.5},
		{"A4 at 48k", 48000, 2048, 440},
		{"A3 at 8k", 8000, 512, 220},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := New(tt.rate, tt.size)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got, err := d.DetectPitch(audiotest.Sine(tt.rate, tt.size, tt.hz, 0.8))
			if err != nil {
				t.Fatalf("DetectPitch() error = %v", err)
			}
			if math.Abs(float64(got)-tt.hz) > tt.hz*0.01 {
				t.Errorf("DetectPitch() = %v, want %v +-1%%", got, tt.hz)
			}
		})
	}
}

func TestDetect_Clarity(t *testing.T) {
	t.Parallel()

	d, _ := New(44100, 2048)
	p, err := d.Detect(audiotest.Sine(44100, 2048, 440, 0.8))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if p.Clarity <= ClarityThreshold || p.Clarity > 1 {
		t.Errorf("Clarity = %v, want in (%v, 1]", p.Clarity, ClarityThreshold)
	}
}

func TestDetectPitch_Harmonics(t *testing.T) {
	t.Parallel()

	const rate, size = 44100, 2048
	win := make([]float32, size)
	for i := range win {
		x := 2 * math.Pi * 196 * float64(i) / rate
		win[i] = float32(0.5*math.Sin(x) + 0.3*math.Sin(2*x) + 0.2*math.Sin(3*x))
	}

	d, _ := New(rate, size)
	got, err := d.DetectPitch(win)
	if err != nil {
		t.Fatalf("DetectPitch() error = %v", err)
	}
	if math.Abs(float64(got)-196) > 196*0.01 {
		t.Errorf("DetectPitch() = %v, want the 196 Hz fundamental", got)
	}
}

func TestDetectPitch_Silence(t *testing.T) {
	t.Parallel()

	d, _ := New(44100, 1024)
	got, err := d.DetectPitch(make([]float32, 1024))
	if err != nil {
		t.Fatalf("DetectPitch() error = %v", err)
	}
	if got != 0.0 {
		t.Errorf("DetectPitch(silence) = %v, want exactly 0", got)
	}
}

func TestDetectPitch_BelowPowerThreshold(t *testing.T) {
	t.Parallel()

	// energy of 1024 samples at amplitude 0.05 is about 1.3
	d, _ := New(44100, 1024)
	got, err := d.DetectPitch(audiotest.Sine(44100, 1024, 440, 0.05))
	if err != nil {
		t.Fatalf("DetectPitch() error = %v", err)
	}
	if got != 0 {
		t.Errorf("DetectPitch() = %v, want 0 under the power threshold", got)
	}
}

func TestDetectPitch_NoiseHasNoPitch(t *testing.T) {
	t.Parallel()

	// xorshift noise, loud enough to pass the power gate
	win := make([]float32, 2048)
	state := uint32(2463534242)
	for i := range win {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		win[i] = float32(state)/float32(math.MaxUint32)*2 - 1
	}

	d, _ := New(44100, 2048)
	got, err := d.DetectPitch(win)
	if err != nil {
		t.Fatalf("DetectPitch() error = %v", err)
	}
	if got != 0 {
		t.Errorf("DetectPitch(noise) = %v, want 0", got)
	}
}

func TestDetectPitch_ShortWindow(t *testing.T) {
	t.Parallel()

	d, _ := New(44100, 1024)

	for _, n := range []int{0, 1, 512, 1023} {
		got, err := d.DetectPitch(audiotest.Sine(44100, n, 440, 0.8))
		if !errors.Is(err, ErrInsufficientSamples) {
			t.Errorf("DetectPitch(%d samples) error = %v, want %v", n, err, ErrInsufficientSamples)
		}
		if got != 0 {
			t.Errorf("DetectPitch(%d samples) = %v alongside an error", n, got)
		}
	}
}

func TestDetectPitch_LongWindow(t *testing.T) {
	t.Parallel()

	d, _ := New(44100, 2048)

	for _, n := range []int{2049, 2148, 4096} {
		got, err := d.DetectPitch(audiotest.Sine(44100, n, 440, 0.8))
		if !errors.Is(err, ErrWindowLength) {
			t.Errorf("DetectPitch(%d samples) error = %v, want %v", n, err, ErrWindowLength)
		}
		if errors.Is(err, ErrInsufficientSamples) {
			t.Errorf("DetectPitch(%d samples) reported a short window", n)
		}
		if got != 0 {
			t.Errorf("DetectPitch(%d samples) = %v alongside an error", n, got)
		}
	}
}

func TestDetectPitch_ZeroAllocs(t *testing.T) {
	d, _ := New(44100, 2048)
	tone := audiotest.Sine(44100, 2048, 440, 0.8)
	silence := make([]float32, 2048)

	for name, win := range map[string][]float32{"tone": tone, "silence": silence} {
		allocs := testing.AllocsPerRun(20, func() {
			_, _ = d.DetectPitch(win)
		})
		if allocs != 0 {
			t.Errorf("DetectPitch(%s) allocs = %v, want 0", name, allocs)
		}
	}
}

// The NSDF numerator must match a plain autocorrelation computed with an
// independent FFT implementation.
func TestNormalizedSquareDifference_MatchesReference(t *testing.T) {
	t.Parallel()

	const size = 1024
	d, _ := New(44100, size)
	win := audiotest.Sine(44100, size, 310, 0.7)
	for i := range win {
		win[i] += 0.2 * float32(math.Sin(float64(i)*0.37))
	}

	var energy float64
	for _, x := range win {
		energy += float64(x) * float64(x)
	}
	d.normalizedSquareDifference(win, energy)

	padded := make([]float64, len(d.padded))
	for i, x := range win {
		padded[i] = float64(x)
	}
	spectrum := fft.FFTReal(padded)
	for i, c := range spectrum {
		spectrum[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	acf := fft.IFFT(spectrum)

	m := 2 * energy
	for tau := range size / 2 {
		if tau > 0 {
			a, b := float64(win[tau-1]), float64(win[size-tau])
			m -= a*a + b*b
		}
		want := 2 * real(acf[tau]) / m
		if math.Abs(d.nsdf[tau]-want) > 1e-9 {
			t.Fatalf("nsdf[%d] = %v, want %v", tau, d.nsdf[tau], want)
		}
	}
}

func TestDetectPitch_CallsAreIndependent(t *testing.T) {
	t.Parallel()

	d, _ := New(44100, 2048)
	tone := audiotest.Sine(44100, 2048, 330, 0.8)

	first, _ := d.DetectPitch(tone)
	_, _ = d.DetectPitch(audiotest.Sine(44100, 2048, 880, 0.8))
	_, _ = d.DetectPitch(make([]float32, 2048))
	again, _ := d.DetectPitch(tone)

	if first != again {
		t.Errorf("same window gave %v then %v", first, again)
	}
}

func BenchmarkDetectPitch(b *testing.B) {
	d, _ := New(44100, 2048)
	win := audiotest.Sine(44100, 2048, 440, 0.8)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = d.DetectPitch(win)
	}
}
