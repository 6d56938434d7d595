// SPDX-License-Identifier: EPL-2.0

package soundfont

// Region is a playable pairing of one preset zone with one instrument zone.
// Instrument level generators are absolute values, preset level generators are
// added on top, as the SoundFont 2 model prescribes.
type Region struct {
	Sample *SampleHeader
	KeyLo  uint8
	KeyHi  uint8
	VelLo  uint8
	VelHi  uint8

	gens [genCount]int32
}

// Gen returns the combined value of generator t.
func (r *Region) Gen(t GeneratorType) int32 {
	if int(t) >= genCount {
		return 0
	}
	return r.gens[t]
}

// Matches reports whether the region sounds for key and velocity.
func (r *Region) Matches(key, vel uint8) bool {
	return key >= r.KeyLo && key <= r.KeyHi && vel >= r.VelLo && vel <= r.VelHi
}

type keyVel struct {
	keyLo, keyHi, velLo, velHi uint8
}

var fullRange = keyVel{0, 127, 0, 127}

func (kv keyVel) intersect(o keyVel) (keyVel, bool) {
	r := keyVel{
		keyLo: max(kv.keyLo, o.keyLo),
		keyHi: min(kv.keyHi, o.keyHi),
		velLo: max(kv.velLo, o.velLo),
		velHi: min(kv.velHi, o.velHi),
	}
	return r, r.keyLo <= r.keyHi && r.velLo <= r.velHi
}

// apply overwrites table entries with the zone's generators and narrows kv.
func apply(z *Zone, table *[genCount]int32, kv *keyVel) {
	for _, g := range z.Generators {
		switch {
		case g.Type == GenKeyRange:
			kv.keyLo, kv.keyHi = g.Range()
		case g.Type == GenVelRange:
			kv.velLo, kv.velHi = g.Range()
		case int(g.Type) < genCount:
			table[g.Type] = int32(g.Int())
		}
	}
}

// splitGlobal separates a leading global zone, recognized by the absence of
// its terminal link generator.
func splitGlobal(zones []Zone, link GeneratorType) (*Zone, []Zone) {
	if len(zones) == 0 {
		return nil, nil
	}
	if _, ok := zones[0].link(link); !ok {
		return &zones[0], zones[1:]
	}
	return nil, zones
}

func (b *Bank) buildRegions(p *Preset) []Region {
	var regions []Region

	pGlobal, pZones := splitGlobal(p.Zones, GenInstrument)
	for i := range pZones {
		instIdx, ok := pZones[i].link(GenInstrument)
		if !ok {
			continue
		}

		var pTable [genCount]int32
		pRange := fullRange
		if pGlobal != nil {
			apply(pGlobal, &pTable, &pRange)
		}
		apply(&pZones[i], &pTable, &pRange)

		inst := &b.Instruments[instIdx]
		iGlobal, iZones := splitGlobal(inst.Zones, GenSampleID)
		for j := range iZones {
			sampleIdx, ok := iZones[j].link(GenSampleID)
			if !ok {
				continue
			}
			sample := &b.Samples[sampleIdx]
			if sample.SampleType&SampleROM != 0 {
				continue
			}

			iTable := defaultGenerators
			iRange := fullRange
			if iGlobal != nil {
				apply(iGlobal, &iTable, &iRange)
			}
			apply(&iZones[j], &iTable, &iRange)

			kv, ok := pRange.intersect(iRange)
			if !ok {
				continue
			}

			r := Region{
				Sample: sample,
				KeyLo:  kv.keyLo,
				KeyHi:  kv.keyHi,
				VelLo:  kv.velLo,
				VelHi:  kv.velHi,
				gens:   iTable,
			}
			for t := range genCount {
				if !instrumentOnly(GeneratorType(t)) {
					r.gens[t] += pTable[t]
				}
			}
			regions = append(regions, r)
		}
	}

	return regions
}
