// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/ik5/sfpitch/internal/audiotest"
)

func unsortedBank() []byte {
	sf := audiotest.NewSoundFont("order")
	s := sf.AddSine("s", 44100, 100, 2, 60)
	inst := sf.AddInstrument("i", audiotest.Zone{Link: s})

	for _, h := range []audiotest.PresetHeader{
		{Name: "Drums", Bank: 128, Preset: 0},
		{Name: "Strings", Bank: 0, Preset: 48},
		{Name: "Piano B", Bank: 1, Preset: 0, Library: 7, Genre: 8, Morphology: 9},
		{Name: "Piano", Bank: 0, Preset: 0},
		{Name: "Piano A", Bank: 1, Preset: 0},
		{Name: "Organ", Bank: 0, Preset: 16},
	} {
		sf.AddPreset(h, audiotest.Zone{Link: inst})
	}
	return sf.Bytes()
}

func TestDirectory_Sorted(t *testing.T) {
	t.Parallel()

	bank, err := Load(unsortedBank())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var got []string
	for _, h := range bank.Directory() {
		got = append(got, h.Name)
	}

	// ties on (1, 0) keep declaration order
	want := []string{"Piano", "Organ", "Strings", "Piano B", "Piano A", "Drums"}
	if !slices.Equal(got, want) {
		t.Errorf("Directory() order = %v, want %v", got, want)
	}
}

func TestDirectory_NonDecreasing(t *testing.T) {
	t.Parallel()

	bank, err := Load(unsortedBank())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := bank.Directory()
	for i := 1; i < len(dir); i++ {
		prev, cur := dir[i-1], dir[i]
		if cur.Bank < prev.Bank || (cur.Bank == prev.Bank && cur.Preset < prev.Preset) {
			t.Errorf("entry %d (%d:%d) sorts before entry %d (%d:%d)",
				i, cur.Bank, cur.Preset, i-1, prev.Bank, prev.Preset)
		}
	}
}

func TestDirectory_StableAcrossReloads(t *testing.T) {
	t.Parallel()

	data := unsortedBank()
	first, err := Load(data)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for range 5 {
		again, err := Load(data)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !slices.Equal(first.Directory(), again.Directory()) {
			t.Fatal("Directory() differs between loads of identical data")
		}
	}
}

func TestDirectory_PassThroughFields(t *testing.T) {
	t.Parallel()

	bank, err := Load(unsortedBank())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// declaration order: Drums, Strings, Piano B, ...; each preset owns one bag
	var pianoB PresetHeader
	for _, h := range bank.Directory() {
		if h.Name == "Piano B" {
			pianoB = h
		}
	}

	want := PresetHeader{Name: "Piano B", Bank: 1, Preset: 0, BagID: 2, Library: 7, Genre: 8, Morphology: 9}
	if pianoB != want {
		t.Errorf("Piano B header = %+v, want %+v", pianoB, want)
	}

	raw, err := json.Marshal(pianoB)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	const wantJSON = `{"name":"Piano B","preset":0,"bank":1,"bag_id":2,"library":7,"genre":8,"morphology":9}`
	if string(raw) != wantJSON {
		t.Errorf("json = %s, want %s", raw, wantJSON)
	}
}

func TestDirectory_IsACopy(t *testing.T) {
	t.Parallel()

	bank, err := Load(unsortedBank())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := bank.Directory()
	dir[0].Name = "changed"

	if bank.Directory()[0].Name != "Piano" {
		t.Error("mutating the directory changed the bank")
	}
}

func TestLookup_FirstDeclarationWins(t *testing.T) {
	t.Parallel()

	bank, err := Load(unsortedBank())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p, ok := bank.Lookup(1, 0)
	if !ok {
		t.Fatal("Lookup(1, 0) not found")
	}
	if p.Header.Name != "Piano B" {
		t.Errorf("Lookup(1, 0) = %q, want %q", p.Header.Name, "Piano B")
	}
}
