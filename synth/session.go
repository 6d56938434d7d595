// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"log/slog"

	"github.com/ik5/sfpitch/soundfont"
)

// Session is a loaded bank, its preset directory and a synth playing it.
// Construction either fully succeeds or returns an error; there is no
// partially initialized session.
type Session struct {
	*Synth

	directory []soundfont.PresetHeader
}

// NewSession parses data as a SoundFont 2 bank and builds a synth over it.
func NewSession(data []byte, cfg Config) (*Session, error) {
	bank, err := soundfont.Load(data)
	if err != nil {
		return nil, err
	}

	s, err := New(bank, cfg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bank loaded",
		slog.String("name", bank.Name),
		slog.Int("presets", len(bank.Presets)),
		slog.Int("instruments", len(bank.Instruments)),
		slog.Int("samples", len(bank.Samples)),
	)

	return &Session{Synth: s, directory: bank.Directory()}, nil
}

// Presets returns the preset directory sorted by bank then preset. The slice
// is a copy.
func (s *Session) Presets() []soundfont.PresetHeader {
	out := make([]soundfont.PresetHeader, len(s.directory))
	copy(out, s.directory)
	return out
}
