// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/sfpitch/internal/audiotest"
)

func ramp(frames int) *audiotest.Source {
	return audiotest.NewSource(1000, 1, frames, func(i, _ int) float32 { return float32(i) })
}

func TestNewWindower_Invalid(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]int{{0, 1}, {4, 0}, {-1, -1}} {
		if _, err := NewWindower(ramp(10), tc[0], tc[1]); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("NewWindower(size %d, hop %d) error = %v, want %v", tc[0], tc[1], err, ErrInvalidWindow)
		}
	}
}

func TestWindower_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		frames     int
		size, hop  int
		wantStarts []int64
	}{
		{"overlapping", 10, 4, 2, []int64{0, 2, 4, 6}},
		{"adjacent", 12, 4, 4, []int64{0, 4, 8}},
		{"gapped", 20, 4, 6, []int64{0, 6, 12}},
		{"shorter than one window", 3, 4, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := NewWindower(ramp(tt.frames), tt.size, tt.hop)
			if err != nil {
				t.Fatalf("NewWindower() error = %v", err)
			}

			var starts []int64
			for {
				win, start, err := w.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				if len(win) != tt.size {
					t.Fatalf("window length = %d, want %d", len(win), tt.size)
				}
				for i, x := range win {
					if x != float32(start)+float32(i) {
						t.Fatalf("window at %d: [%d] = %v, want %v", start, i, x, float32(start)+float32(i))
					}
				}
				starts = append(starts, start)
			}

			if len(starts) != len(tt.wantStarts) {
				t.Fatalf("starts = %v, want %v", starts, tt.wantStarts)
			}
			for i := range starts {
				if starts[i] != tt.wantStarts[i] {
					t.Errorf("starts = %v, want %v", starts, tt.wantStarts)
					break
				}
			}
		})
	}
}

func TestWindower_EOFIsSticky(t *testing.T) {
	t.Parallel()

	w, _ := NewWindower(ramp(4), 4, 4)
	if _, _, err := w.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	for range 3 {
		if _, _, err := w.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("Next() after end error = %v, want io.EOF", err)
		}
	}
}
