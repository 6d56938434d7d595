// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"errors"
	"testing"

	"github.com/ik5/sfpitch/internal/audiotest"
	"github.com/ik5/sfpitch/soundfont"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	sess, err := NewSession(audiotest.SineBank(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	presets := sess.Presets()
	if len(presets) != 1 || presets[0].Name != "Sine" {
		t.Fatalf("Presets() = %+v, want one Sine preset", presets)
	}

	presets[0].Name = "changed"
	if sess.Presets()[0].Name != "Sine" {
		t.Error("Presets() exposes internal state")
	}

	sess.NoteOn(0, 69, 100)
	l, _ := sess.RenderBlock(256)
	if peak(l) == 0 {
		t.Error("session rendered silence")
	}
}

func TestNewSession_MalformedBank(t *testing.T) {
	t.Parallel()

	data := audiotest.SineBank()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", data[:len(data)/2]},
		{"not riff", []byte("this is not a soundfont at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sess, err := NewSession(tt.data, DefaultConfig())
			if !errors.Is(err, soundfont.ErrMalformedBank) {
				t.Errorf("NewSession() error = %v, want %v", err, soundfont.ErrMalformedBank)
			}
			if sess != nil {
				t.Error("NewSession() returned a session alongside an error")
			}
		})
	}
}
