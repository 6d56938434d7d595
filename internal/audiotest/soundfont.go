// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Generator operators used by the builder. They mirror soundfont.GeneratorType
// and are duplicated here to keep this package free of imports that would
// cycle back into the packages under test.
const (
	OpPan            uint16 = 17
	OpAttackVolEnv   uint16 = 34
	OpHoldVolEnv     uint16 = 35
	OpDecayVolEnv    uint16 = 36
	OpSustainVolEnv  uint16 = 37
	OpReleaseVolEnv  uint16 = 38
	OpInstrument     uint16 = 41
	OpKeyRange       uint16 = 43
	OpVelRange       uint16 = 44
	OpAttenuation    uint16 = 48
	OpCoarseTune     uint16 = 51
	OpSampleID       uint16 = 53
	OpSampleModes    uint16 = 54
	OpExclusiveClass uint16 = 57
	OpRootKey        uint16 = 58
)

// Gen is a raw generator record.
type Gen struct {
	Op     uint16
	Amount uint16
}

// Amount builds a generator with a signed amount.
func Amount(op uint16, v int16) Gen { return Gen{Op: op, Amount: uint16(v)} }

// Range builds a key or velocity range generator.
func Range(op uint16, lo, hi uint8) Gen { return Gen{Op: op, Amount: uint16(lo) | uint16(hi)<<8} }

// Zone is a bag of generators. Link is the instrument (preset zones) or sample
// (instrument zones) index; a negative Link makes a global zone.
type Zone struct {
	Link int
	Gens []Gen
}

// PresetHeader mirrors the phdr record fields.
type PresetHeader struct {
	Name       string
	Preset     uint16
	Bank       uint16
	Library    uint32
	Genre      uint32
	Morphology uint32
}

type sampleDef struct {
	name      string
	start     uint32
	end       uint32
	loopStart uint32
	loopEnd   uint32
	rate      uint32
	root      uint8
}

type instDef struct {
	name  string
	zones []Zone
}

type presetDef struct {
	hdr   PresetHeader
	zones []Zone
}

// SoundFont assembles a SoundFont 2 blob in memory.
type SoundFont struct {
	Name    string
	Major   uint16
	points  []int16
	samples []sampleDef
	insts   []instDef
	presets []presetDef
}

// NewSoundFont returns an empty version 2.01 bank.
func NewSoundFont(name string) *SoundFont {
	return &SoundFont{Name: name, Major: 2}
}

// AddSine appends a looped sine sample: cycles whole periods of `period`
// points at rate Hz, with rootKey as original pitch. It returns the sample index.
func (sf *SoundFont) AddSine(name string, rate, period, cycles int, rootKey uint8) int {
	start := uint32(len(sf.points))
	for i := range period * cycles {
		v := math.Sin(2 * math.Pi * float64(i) / float64(period))
		sf.points = append(sf.points, int16(v*32000))
	}
	end := uint32(len(sf.points))
	// 46 zero points after every sample, as the format requires
	sf.points = append(sf.points, make([]int16, 46)...)

	sf.samples = append(sf.samples, sampleDef{
		name:      name,
		start:     start,
		end:       end,
		loopStart: start,
		loopEnd:   end,
		rate:      uint32(rate),
		root:      rootKey,
	})
	return len(sf.samples) - 1
}

// AddInstrument appends an instrument and returns its index.
func (sf *SoundFont) AddInstrument(name string, zones ...Zone) int {
	sf.insts = append(sf.insts, instDef{name: name, zones: zones})
	return len(sf.insts) - 1
}

// AddPreset appends a preset header with its zones.
func (sf *SoundFont) AddPreset(hdr PresetHeader, zones ...Zone) {
	sf.presets = append(sf.presets, presetDef{hdr: hdr, zones: zones})
}

// Bytes serializes the bank.
func (sf *SoundFont) Bytes() []byte {
	info := new(bytes.Buffer)
	ifil := make([]byte, 4)
	binary.LittleEndian.PutUint16(ifil[0:], sf.Major)
	binary.LittleEndian.PutUint16(ifil[2:], 1)
	writeChunk(info, "ifil", ifil)
	writeChunk(info, "INAM", padName(sf.Name, len(sf.Name)+1+len(sf.Name)%2))

	sdta := new(bytes.Buffer)
	smpl := make([]byte, 2*len(sf.points))
	for i, p := range sf.points {
		binary.LittleEndian.PutUint16(smpl[2*i:], uint16(p))
	}
	writeChunk(sdta, "smpl", smpl)

	pdta := new(bytes.Buffer)
	sf.writeHydra(pdta)

	body := new(bytes.Buffer)
	body.WriteString("sfbk")
	writeList(body, "INFO", info.Bytes())
	writeList(body, "sdta", sdta.Bytes())
	writeList(body, "pdta", pdta.Bytes())

	out := new(bytes.Buffer)
	writeChunk(out, "RIFF", body.Bytes())
	return out.Bytes()
}

func (sf *SoundFont) writeHydra(w *bytes.Buffer) {
	phdr, pbag, pmod, pgen := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)
	var bagN, genN uint16

	for _, p := range sf.presets {
		phdr.Write(padName(p.hdr.Name, 20))
		put16(phdr, p.hdr.Preset)
		put16(phdr, p.hdr.Bank)
		put16(phdr, bagN)
		put32(phdr, p.hdr.Library)
		put32(phdr, p.hdr.Genre)
		put32(phdr, p.hdr.Morphology)
		for _, z := range p.zones {
			put16(pbag, genN)
			put16(pbag, 0)
			bagN++
			genN += writeGens(pgen, z, OpInstrument)
		}
	}
	phdr.Write(padName("EOP", 20))
	put16(phdr, 0)
	put16(phdr, 0)
	put16(phdr, bagN)
	phdr.Write(make([]byte, 12))
	put16(pbag, genN)
	put16(pbag, 0)
	pmod.Write(make([]byte, 10))
	pgen.Write(make([]byte, 4))

	inst, ibag, imod, igen := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)
	bagN, genN = 0, 0
	for _, in := range sf.insts {
		inst.Write(padName(in.name, 20))
		put16(inst, bagN)
		for _, z := range in.zones {
			put16(ibag, genN)
			put16(ibag, 0)
			bagN++
			genN += writeGens(igen, z, OpSampleID)
		}
	}
	inst.Write(padName("EOI", 20))
	put16(inst, bagN)
	put16(ibag, genN)
	put16(ibag, 0)
	imod.Write(make([]byte, 10))
	igen.Write(make([]byte, 4))

	shdr := new(bytes.Buffer)
	for _, s := range sf.samples {
		shdr.Write(padName(s.name, 20))
		put32(shdr, s.start)
		put32(shdr, s.end)
		put32(shdr, s.loopStart)
		put32(shdr, s.loopEnd)
		put32(shdr, s.rate)
		shdr.WriteByte(s.root)
		shdr.WriteByte(0)
		put16(shdr, 0)
		put16(shdr, 1)
	}
	shdr.Write(padName("EOS", 20))
	shdr.Write(make([]byte, 26))

	writeChunk(w, "phdr", phdr.Bytes())
	writeChunk(w, "pbag", pbag.Bytes())
	writeChunk(w, "pmod", pmod.Bytes())
	writeChunk(w, "pgen", pgen.Bytes())
	writeChunk(w, "inst", inst.Bytes())
	writeChunk(w, "ibag", ibag.Bytes())
	writeChunk(w, "imod", imod.Bytes())
	writeChunk(w, "igen", igen.Bytes())
	writeChunk(w, "shdr", shdr.Bytes())
}

// writeGens emits range generators first and the link generator last, as the
// format orders them, and returns the record count.
func writeGens(w *bytes.Buffer, z Zone, link uint16) uint16 {
	var n uint16
	emit := func(g Gen) {
		put16(w, g.Op)
		put16(w, g.Amount)
		n++
	}

	for _, g := range z.Gens {
		if g.Op == OpKeyRange {
			emit(g)
		}
	}
	for _, g := range z.Gens {
		if g.Op == OpVelRange {
			emit(g)
		}
	}
	for _, g := range z.Gens {
		if g.Op != OpKeyRange && g.Op != OpVelRange {
			emit(g)
		}
	}
	if z.Link >= 0 {
		emit(Gen{Op: link, Amount: uint16(z.Link)})
	}

	return n
}

func writeChunk(w *bytes.Buffer, id string, data []byte) {
	w.WriteString(id)
	put32(w, uint32(len(data)))
	w.Write(data)
	if len(data)%2 == 1 {
		w.WriteByte(0)
	}
}

func writeList(w *bytes.Buffer, kind string, data []byte) {
	writeChunk(w, "LIST", append([]byte(kind), data...))
}

func padName(name string, n int) []byte {
	b := make([]byte, n)
	copy(b[:n-1], name)
	return b
}

func put16(w *bytes.Buffer, v uint16) { _ = binary.Write(w, binary.LittleEndian, v) }
func put32(w *bytes.Buffer, v uint32) { _ = binary.Write(w, binary.LittleEndian, v) }

// SineBank is a one-preset bank (bank 0, preset 0, "Sine") playing a looped
// 441 Hz sine at 44.1 kHz rooted on key 69, with a short release. Extra
// instrument generators are appended to its only zone.
func SineBank(extra ...Gen) []byte {
	sf := NewSoundFont("Test Sine")
	s := sf.AddSine("sine441", 44100, 100, 20, 69)
	gens := append([]Gen{
		Amount(OpSampleModes, 1),
		Amount(OpReleaseVolEnv, -3986), // ~0.1 s
	}, extra...)
	inst := sf.AddInstrument("Sine", Zone{Link: s, Gens: gens})
	sf.AddPreset(PresetHeader{Name: "Sine", Preset: 0, Bank: 0}, Zone{Link: inst})
	return sf.Bytes()
}
