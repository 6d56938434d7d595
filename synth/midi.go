// SPDX-License-Identifier: EPL-2.0

package synth

import "gitlab.com/gomidi/midi/v2"

// Controller numbers understood by Dispatch.
const (
	ccBankSelect       = 0
	ccVolume           = 7
	ccPan              = 10
	ccExpression       = 11
	ccBankSelectLSB    = 32
	ccSustain          = 64
	ccAllSoundOff      = 120
	ccResetControllers = 121
	ccAllNotesOff      = 123
)

// Dispatch applies a MIDI channel voice message. It reports false for messages
// the synth does not act on (system messages, aftertouch, unknown
// controllers).
//
// Bank select latches the MSB as the SoundFont bank for the next program
// change; the LSB is accepted and ignored. The percussion channel stays on
// bank 128.
func (s *Synth) Dispatch(msg midi.Message) bool {
	var ch, key, vel, ctl, val, prog uint8
	var bend int16
	var abs uint16

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		s.NoteOn(int(ch), int(key), int(vel))
	case msg.GetNoteEnd(&ch, &key):
		s.NoteOff(int(ch), int(key))
	case msg.GetProgramChange(&ch, &prog):
		c := s.channel(int(ch))
		s.SelectProgram(c, uint32(s.channels[c].bankSelect), prog)
	case msg.GetPitchBend(&ch, &bend, &abs):
		s.channels[s.channel(int(ch))].setBend(bend)
	case msg.GetControlChange(&ch, &ctl, &val):
		return s.controlChange(s.channel(int(ch)), ctl, val)
	default:
		return false
	}

	return true
}

func (s *Synth) controlChange(ch int, ctl, val uint8) bool {
	c := &s.channels[ch]

	switch ctl {
	case ccBankSelect:
		if ch != percussionChannel {
			c.bankSelect = uint16(val)
		}
	case ccBankSelectLSB:
	case ccVolume:
		c.volume = val
	case ccExpression:
		c.expression = val
	case ccPan:
		c.pan = val
	case ccSustain:
		s.SetSustain(ch, val >= 64)
	case ccAllSoundOff:
		s.AllSoundOff(ch)
	case ccResetControllers:
		s.SetSustain(ch, false)
		c.resetControllers()
	case ccAllNotesOff:
		s.AllNotesOff(ch)
	default:
		return false
	}

	return true
}
