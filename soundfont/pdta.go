// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"encoding/binary"
	"fmt"
)

type bag struct {
	gen uint16
	mod uint16
}

type hydra struct {
	phdr, pbag, pmod, pgen []byte
	inst, ibag, imod, igen []byte
	shdr                   []byte
}

func (b *Bank) parsePresetData(pdta []chunk) error {
	var h hydra
	fields := []struct {
		id   string
		dst  *[]byte
		size int
	}{
		{"phdr", &h.phdr, phdrSize},
		{"pbag", &h.pbag, bagSize},
		{"pmod", &h.pmod, modSize},
		{"pgen", &h.pgen, genSize},
		{"inst", &h.inst, instSize},
		{"ibag", &h.ibag, bagSize},
		{"imod", &h.imod, modSize},
		{"igen", &h.igen, genSize},
		{"shdr", &h.shdr, shdrSize},
	}

	for _, f := range fields {
		data, ok := lookup(pdta, f.id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingChunk, f.id)
		}
		// every list ends with a terminal record
		if len(data) < f.size || len(data)%f.size != 0 {
			return fmt.Errorf("%w: %s is %d bytes, record size %d", ErrChunkSize, f.id, len(data), f.size)
		}
		*f.dst = data
	}

	if err := b.parseSamples(h.shdr); err != nil {
		return err
	}

	pbags := parseBags(h.pbag)
	pgens := parseGens(h.pgen)
	pmods := parseMods(h.pmod)
	ibags := parseBags(h.ibag)
	igens := parseGens(h.igen)
	imods := parseMods(h.imod)

	if err := checkBags("pbag", pbags, len(pgens), len(pmods)); err != nil {
		return err
	}
	if err := checkBags("ibag", ibags, len(igens), len(imods)); err != nil {
		return err
	}

	// instruments
	nInst := len(h.inst)/instSize - 1
	b.Instruments = make([]Instrument, nInst)
	for i := range nInst {
		rec := h.inst[i*instSize:]
		next := h.inst[(i+1)*instSize:]
		lo := int(binary.LittleEndian.Uint16(rec[20:22]))
		hi := int(binary.LittleEndian.Uint16(next[20:22]))
		if lo > hi || hi >= len(ibags) {
			return fmt.Errorf("%w: instrument %d bags %d..%d of %d", ErrBadIndex, i, lo, hi, len(ibags))
		}

		b.Instruments[i] = Instrument{
			Name:  cString(rec[:20]),
			Zones: buildZones(ibags[lo:hi+1], igens, imods),
		}
	}

	// presets
	nPresets := len(h.phdr)/phdrSize - 1
	b.Presets = make([]Preset, nPresets)
	for i := range nPresets {
		rec := h.phdr[i*phdrSize:]
		next := h.phdr[(i+1)*phdrSize:]
		lo := int(binary.LittleEndian.Uint16(rec[24:26]))
		hi := int(binary.LittleEndian.Uint16(next[24:26]))
		if lo > hi || hi >= len(pbags) {
			return fmt.Errorf("%w: preset %d bags %d..%d of %d", ErrBadIndex, i, lo, hi, len(pbags))
		}

		b.Presets[i] = Preset{
			Header: PresetHeader{
				Name:       cString(rec[:20]),
				Preset:     binary.LittleEndian.Uint16(rec[20:22]),
				Bank:       binary.LittleEndian.Uint16(rec[22:24]),
				BagID:      uint16(lo),
				Library:    binary.LittleEndian.Uint32(rec[26:30]),
				Genre:      binary.LittleEndian.Uint32(rec[30:34]),
				Morphology: binary.LittleEndian.Uint32(rec[34:38]),
			},
			Zones: buildZones(pbags[lo:hi+1], pgens, pmods),
		}
	}

	return b.checkLinks()
}

func (b *Bank) parseSamples(shdr []byte) error {
	n := len(shdr)/shdrSize - 1
	total := uint32(len(b.SampleData))

	b.Samples = make([]SampleHeader, n)
	for i := range n {
		rec := shdr[i*shdrSize:]
		s := SampleHeader{
			Name:            cString(rec[:20]),
			Start:           binary.LittleEndian.Uint32(rec[20:24]),
			End:             binary.LittleEndian.Uint32(rec[24:28]),
			StartLoop:       binary.LittleEndian.Uint32(rec[28:32]),
			EndLoop:         binary.LittleEndian.Uint32(rec[32:36]),
			SampleRate:      binary.LittleEndian.Uint32(rec[36:40]),
			OriginalPitch:   rec[40],
			PitchCorrection: int8(rec[41]),
			SampleLink:      binary.LittleEndian.Uint16(rec[42:44]),
			SampleType:      binary.LittleEndian.Uint16(rec[44:46]),
		}

		// ROM samples point outside smpl and are never played
		if s.SampleType&SampleROM == 0 && (s.Start > s.End || s.End > total) {
			return fmt.Errorf("%w: sample %q spans %d..%d of %d points", ErrBadIndex, s.Name, s.Start, s.End, total)
		}
		b.Samples[i] = s
	}

	return nil
}

// checkLinks validates the terminal Instrument and SampleID generators.
func (b *Bank) checkLinks() error {
	for i := range b.Presets {
		for _, z := range b.Presets[i].Zones {
			if inst, ok := z.link(GenInstrument); ok && inst >= len(b.Instruments) {
				return fmt.Errorf("%w: preset %q references instrument %d of %d",
					ErrBadIndex, b.Presets[i].Header.Name, inst, len(b.Instruments))
			}
		}
	}

	for i := range b.Instruments {
		for _, z := range b.Instruments[i].Zones {
			if s, ok := z.link(GenSampleID); ok && s >= len(b.Samples) {
				return fmt.Errorf("%w: instrument %q references sample %d of %d",
					ErrBadIndex, b.Instruments[i].Name, s, len(b.Samples))
			}
		}
	}

	return nil
}

func parseBags(data []byte) []bag {
	bags := make([]bag, len(data)/bagSize)
	for i := range bags {
		bags[i] = bag{
			gen: binary.LittleEndian.Uint16(data[i*bagSize:]),
			mod: binary.LittleEndian.Uint16(data[i*bagSize+2:]),
		}
	}
	return bags
}

func parseGens(data []byte) []Generator {
	gens := make([]Generator, len(data)/genSize)
	for i := range gens {
		gens[i] = Generator{
			Type:   GeneratorType(binary.LittleEndian.Uint16(data[i*genSize:])),
			Amount: binary.LittleEndian.Uint16(data[i*genSize+2:]),
		}
	}
	return gens
}

func parseMods(data []byte) []Modulator {
	mods := make([]Modulator, len(data)/modSize)
	for i := range mods {
		rec := data[i*modSize:]
		mods[i] = Modulator{
			Src:       binary.LittleEndian.Uint16(rec[0:2]),
			Dest:      binary.LittleEndian.Uint16(rec[2:4]),
			Amount:    int16(binary.LittleEndian.Uint16(rec[4:6])),
			AmtSrc:    binary.LittleEndian.Uint16(rec[6:8]),
			Transform: binary.LittleEndian.Uint16(rec[8:10]),
		}
	}
	return mods
}

// checkBags verifies that generator and modulator indices never decrease and
// stay inside their lists. The last bag is the terminal record.
func checkBags(name string, bags []bag, nGens, nMods int) error {
	for i := range bags {
		if int(bags[i].gen) >= nGens || int(bags[i].mod) >= nMods {
			return fmt.Errorf("%w: %s[%d] gen %d/%d mod %d/%d",
				ErrBadIndex, name, i, bags[i].gen, nGens, bags[i].mod, nMods)
		}
		if i > 0 && (bags[i].gen < bags[i-1].gen || bags[i].mod < bags[i-1].mod) {
			return fmt.Errorf("%w: %s[%d] indices decrease", ErrBadIndex, name, i)
		}
	}
	return nil
}

// buildZones turns bags[k]..bags[k+1] windows into zones; bags holds one more
// entry than the zones it describes.
func buildZones(bags []bag, gens []Generator, mods []Modulator) []Zone {
	zones := make([]Zone, len(bags)-1)
	for i := range zones {
		zones[i] = Zone{
			Generators: gens[bags[i].gen:bags[i+1].gen],
			Modulators: mods[bags[i].mod:bags[i+1].mod],
		}
	}
	return zones
}
