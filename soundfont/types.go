// SPDX-License-Identifier: EPL-2.0

package soundfont

// PresetHeader identifies one playable instrument. BagID, Library, Genre and
// Morphology are carried verbatim from the phdr record.
type PresetHeader struct {
	Name       string `json:"name"`
	Preset     uint16 `json:"preset"`
	Bank       uint16 `json:"bank"`
	BagID      uint16 `json:"bag_id"`
	Library    uint32 `json:"library"`
	Genre      uint32 `json:"genre"`
	Morphology uint32 `json:"morphology"`
}

// SampleType flags from the shdr record.
const (
	SampleMono   uint16 = 1
	SampleRight  uint16 = 2
	SampleLeft   uint16 = 4
	SampleLinked uint16 = 8
	SampleROM    uint16 = 0x8000
)

// SampleHeader describes one sample inside the smpl chunk.
// Offsets are in sample points from the start of the chunk.
type SampleHeader struct {
	Name            string
	Start           uint32
	End             uint32
	StartLoop       uint32
	EndLoop         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8
	SampleLink      uint16
	SampleType      uint16
}

// Modulator is an opaque pmod/imod record.
type Modulator struct {
	Src       uint16
	Dest      uint16
	Amount    int16
	AmtSrc    uint16
	Transform uint16
}

// Zone is one bag of generators and modulators.
type Zone struct {
	Generators []Generator
	Modulators []Modulator
}

// link returns the terminal Instrument/SampleID generator of the zone.
func (z *Zone) link(t GeneratorType) (int, bool) {
	for _, g := range z.Generators {
		if g.Type == t {
			return int(g.Amount), true
		}
	}
	return 0, false
}

// Instrument is a named set of zones, each normally pointing at a sample.
type Instrument struct {
	Name  string
	Zones []Zone
}

// Preset is a phdr record together with its zones and the flattened regions
// the synth plays from.
type Preset struct {
	Header  PresetHeader
	Zones   []Zone
	Regions []Region
}

// Version is the ifil format version.
type Version struct {
	Major uint16
	Minor uint16
}

// Bank is a parsed SoundFont. It is immutable after Load and safe to share
// read-only between synth instances.
type Bank struct {
	Name        string
	Version     Version
	Presets     []Preset // declaration order, terminal record excluded
	Instruments []Instrument
	Samples     []SampleHeader
	// SampleData holds the whole smpl chunk normalized to [-1, 1).
	SampleData []float32

	index map[uint32]int
}

func programKey(bank, preset uint16) uint32 {
	return uint32(bank)<<16 | uint32(preset)
}

// Lookup returns the preset addressed by (bank, preset). When a bank declares
// the same pair twice the first declaration wins.
func (b *Bank) Lookup(bank, preset uint16) (*Preset, bool) {
	i, ok := b.index[programKey(bank, preset)]
	if !ok {
		return nil, false
	}
	return &b.Presets[i], true
}
