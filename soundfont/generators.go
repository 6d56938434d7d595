// SPDX-License-Identifier: EPL-2.0

package soundfont

// GeneratorType is a SoundFont 2 generator operator.
type GeneratorType uint16

const (
	GenStartAddrsOffset           GeneratorType = 0
	GenEndAddrsOffset             GeneratorType = 1
	GenStartloopAddrsOffset       GeneratorType = 2
	GenEndloopAddrsOffset         GeneratorType = 3
	GenStartAddrsCoarseOffset     GeneratorType = 4
	GenModLfoToPitch              GeneratorType = 5
	GenVibLfoToPitch              GeneratorType = 6
	GenModEnvToPitch              GeneratorType = 7
	GenInitialFilterFc            GeneratorType = 8
	GenInitialFilterQ             GeneratorType = 9
	GenModLfoToFilterFc           GeneratorType = 10
	GenModEnvToFilterFc           GeneratorType = 11
	GenEndAddrsCoarseOffset       GeneratorType = 12
	GenModLfoToVolume             GeneratorType = 13
	GenChorusEffectsSend          GeneratorType = 15
	GenReverbEffectsSend          GeneratorType = 16
	GenPan                        GeneratorType = 17
	GenDelayModLFO                GeneratorType = 21
	GenFreqModLFO                 GeneratorType = 22
	GenDelayVibLFO                GeneratorType = 23
	GenFreqVibLFO                 GeneratorType = 24
	GenDelayModEnv                GeneratorType = 25
	GenAttackModEnv               GeneratorType = 26
	GenHoldModEnv                 GeneratorType = 27
	GenDecayModEnv                GeneratorType = 28
	GenSustainModEnv              GeneratorType = 29
	GenReleaseModEnv              GeneratorType = 30
	GenKeynumToModEnvHold         GeneratorType = 31
	GenKeynumToModEnvDecay        GeneratorType = 32
	GenDelayVolEnv                GeneratorType = 33
	GenAttackVolEnv               GeneratorType = 34
	GenHoldVolEnv                 GeneratorType = 35
	GenDecayVolEnv                GeneratorType = 36
	GenSustainVolEnv              GeneratorType = 37
	GenReleaseVolEnv              GeneratorType = 38
	GenKeynumToVolEnvHold         GeneratorType = 39
	GenKeynumToVolEnvDecay        GeneratorType = 40
	GenInstrument                 GeneratorType = 41
	GenKeyRange                   GeneratorType = 43
	GenVelRange                   GeneratorType = 44
	GenStartloopAddrsCoarseOffset GeneratorType = 45
	GenKeynum                     GeneratorType = 46
	GenVelocity                   GeneratorType = 47
	GenInitialAttenuation         GeneratorType = 48
	GenEndloopAddrsCoarseOffset   GeneratorType = 50
	GenCoarseTune                 GeneratorType = 51
	GenFineTune                   GeneratorType = 52
	GenSampleID                   GeneratorType = 53
	GenSampleModes                GeneratorType = 54
	GenScaleTuning                GeneratorType = 56
	GenExclusiveClass             GeneratorType = 57
	GenOverridingRootKey          GeneratorType = 58
	GenEndOper                    GeneratorType = 60
)

// genCount bounds the generator table of a Region.
const genCount = int(GenEndOper)

// Generator is one operator/amount pair from a pgen or igen record.
// Amount keeps the raw 16 bits; use Int or Range to interpret it.
type Generator struct {
	Type   GeneratorType
	Amount uint16
}

// Int returns the amount as a signed value.
func (g Generator) Int() int16 { return int16(g.Amount) }

// Range returns the amount as a lo/hi byte pair (key and velocity ranges).
func (g Generator) Range() (lo, hi uint8) {
	return uint8(g.Amount), uint8(g.Amount >> 8)
}

// defaultGenerators holds the SoundFont 2.01 default values, indexed by operator.
var defaultGenerators = func() [genCount]int32 {
	var d [genCount]int32

	d[GenInitialFilterFc] = 13500
	d[GenDelayModLFO] = -12000
	d[GenDelayVibLFO] = -12000
	d[GenDelayModEnv] = -12000
	d[GenAttackModEnv] = -12000
	d[GenHoldModEnv] = -12000
	d[GenDecayModEnv] = -12000
	d[GenReleaseModEnv] = -12000
	d[GenDelayVolEnv] = -12000
	d[GenAttackVolEnv] = -12000
	d[GenHoldVolEnv] = -12000
	d[GenDecayVolEnv] = -12000
	d[GenReleaseVolEnv] = -12000
	d[GenKeynum] = -1
	d[GenVelocity] = -1
	d[GenScaleTuning] = 100
	d[GenOverridingRootKey] = -1

	return d
}()

// instrumentOnly lists operators that are ignored at preset level
// (they are not additive offsets).
func instrumentOnly(t GeneratorType) bool {
	switch t {
	case GenStartAddrsOffset, GenEndAddrsOffset, GenStartloopAddrsOffset,
		GenEndloopAddrsOffset, GenStartAddrsCoarseOffset, GenEndAddrsCoarseOffset,
		GenStartloopAddrsCoarseOffset, GenEndloopAddrsCoarseOffset,
		GenKeynum, GenVelocity, GenSampleModes, GenExclusiveClass,
		GenOverridingRootKey, GenSampleID, GenInstrument,
		GenKeyRange, GenVelRange:
		return true
	}
	return false
}
