// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/sfpitch/internal/audiotest"
	"github.com/ik5/sfpitch/soundfont"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFixtures(t *testing.T) (bank, song string) {
	t.Helper()

	dir := t.TempDir()
	bank = filepath.Join(dir, "sine.sf2")
	if err := os.WriteFile(bank, audiotest.SineBank(), 0o644); err != nil {
		t.Fatal(err)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 69, 110))
	tr.Add(96, midi.NoteOff(0, 69))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	song = filepath.Join(dir, "a4.mid")
	if err := s.WriteFile(song); err != nil {
		t.Fatal(err)
	}

	return bank, song
}

func TestPresets(t *testing.T) {
	t.Parallel()

	bank, _ := writeFixtures(t)

	out, err := run(t, "presets", bank)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if got := strings.Join(strings.Fields(lines[len(lines)-1]), " "); got != "000 000 Sine" {
		t.Errorf("row = %q, want %q", got, "000 000 Sine")
	}

	out, err = run(t, "presets", "--json", bank)
	if err != nil {
		t.Fatal(err)
	}
	var dir []soundfont.PresetHeader
	if err := json.Unmarshal([]byte(out), &dir); err != nil {
		t.Fatal(err)
	}
	if len(dir) != 1 || dir[0].Name != "Sine" {
		t.Errorf("directory = %+v", dir)
	}
}

func TestRenderAndPitch(t *testing.T) {
	t.Parallel()

	bank, song := writeFixtures(t)
	wav := filepath.Join(filepath.Dir(song), "out.wav")

	if _, err := run(t, "render", bank, song, "-o", wav, "--block", "256"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "pitch", wav, "--hop", "2048", "--min-clarity", "0.9", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var rows []estimate
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("no clear estimates")
	}
	for _, r := range rows {
		if r.Note != "A4" {
			t.Errorf("%.3f s: %.1f Hz %s, want A4", r.Time, r.Frequency, r.Note)
		}
	}
}

func TestRenderDefaultOutput(t *testing.T) {
	t.Parallel()

	bank, song := writeFixtures(t)
	if _, err := run(t, "render", bank, song); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(strings.TrimSuffix(song, ".mid") + ".wav")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() <= 44 {
		t.Errorf("wav is %d bytes", info.Size())
	}
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	bank, song := writeFixtures(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing bank", []string{"presets", filepath.Join(t.TempDir(), "none.sf2")}},
		{"not a bank", []string{"presets", song}},
		{"bad rate", []string{"render", bank, song, "--rate", "0"}},
		{"unsupported audio", []string{"pitch", bank}},
		{"arg count", []string{"render", bank}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
