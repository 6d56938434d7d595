// SPDX-License-Identifier: EPL-2.0

package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/sfpitch/internal/audiotest"
)

func TestNewTracker_InvalidHop(t *testing.T) {
	t.Parallel()

	d, _ := New(44100, 1024)
	if _, err := NewTracker(audiotest.NewSilentSource(44100, 1, 10), d, 0); !errors.Is(err, ErrInvalidHop) {
		t.Errorf("NewTracker() error = %v, want %v", err, ErrInvalidHop)
	}
}

func TestTracker_All(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
	}{
		{"mono same rate", 44100, 1},
		{"stereo same rate", 44100, 2},
		{"stereo resampled", 48000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// half a second of 440 Hz, then half a second of silence
			half := tt.rate / 2
			src := audiotest.NewSource(tt.rate, tt.channels, 2*half, func(i, _ int) float32 {
				if i >= half {
					return 0
				}
				return float32(0.8 * math.Sin(2*math.Pi*440*float64(i)/float64(tt.rate)))
			})

			d, _ := New(44100, 2048)
			tr, err := NewTracker(src, d, 1024)
			if err != nil {
				t.Fatalf("NewTracker() error = %v", err)
			}
			defer tr.Close()

			est, err := tr.All()
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			if len(est) < 40 {
				t.Fatalf("got %d estimates, want at least 40", len(est))
			}

			for i, e := range est {
				if want := float64(i) * 1024 / 44100; math.Abs(e.Time-want) > 1e-9 {
					t.Fatalf("estimate %d time = %v, want %v", i, e.Time, want)
				}
				switch {
				case e.Time+2048.0/44100 < 0.49:
					if math.Abs(e.Frequency-440) > 4.4 {
						t.Errorf("t=%.3f frequency = %v, want 440", e.Time, e.Frequency)
					}
				case e.Time > 0.51:
					if e.Frequency != 0 {
						t.Errorf("t=%.3f frequency = %v, want 0 in silence", e.Time, e.Frequency)
					}
				}
			}
		})
	}
}
