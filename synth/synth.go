// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"log/slog"

	"github.com/ik5/sfpitch/audio"
	"github.com/ik5/sfpitch/soundfont"
)

// Synth renders a SoundFont bank under a channel and voice model.
//
// A Synth is not safe for concurrent use; drive it from one goroutine, the
// way an audio callback would.
type Synth struct {
	bank     *soundfont.Bank
	cfg      Config
	logger   *slog.Logger
	channels []channel
	voices   []voice
	notes    uint64

	// interleaving buffers for ReadSamples
	scratchL []float32
	scratchR []float32
}

var _ audio.Source = (*Synth)(nil)

// New creates a synth over bank. The voice pool and every render buffer are
// allocated here; Render does not allocate afterwards.
func New(bank *soundfont.Bank, cfg Config) (*Synth, error) {
	if bank == nil {
		return nil, ErrNilBank
	}
	cfg = cfg.normalize()

	s := &Synth{
		bank:     bank,
		cfg:      cfg,
		logger:   cfg.Logger,
		channels: make([]channel, cfg.Channels),
		voices:   make([]voice, cfg.Polyphony),
		scratchL: make([]float32, scratchFrames),
		scratchR: make([]float32, scratchFrames),
	}
	for i := range s.voices {
		s.voices[i].env.finish()
	}
	for i := range s.channels {
		s.channels[i].reset(i)
		p, ok := bank.Lookup(s.channels[i].bankSelect, 0)
		if !ok {
			p, _ = bank.Lookup(0, 0)
		}
		s.channels[i].program = p
	}

	s.logger.Debug("synth ready",
		slog.String("bank", bank.Name),
		slog.Int("presets", len(bank.Presets)),
		slog.Int("sample_rate", cfg.SampleRate),
		slog.Int("polyphony", cfg.Polyphony),
	)

	return s, nil
}

// Config returns the normalized configuration in use.
func (s *Synth) Config() Config { return s.cfg }

// Bank returns the bank the synth plays from.
func (s *Synth) Bank() *soundfont.Bank { return s.bank }

// channel clamps ch into the channel table.
func (s *Synth) channel(ch int) int {
	return min(max(ch, 0), len(s.channels)-1)
}

func clampMIDI(v int) int { return min(max(v, 0), 127) }

// SelectProgram binds channel to (bank, preset). Pairs that the bank does not
// declare are ignored and the channel keeps its previous program. channel is
// clamped into [0, Channels).
func (s *Synth) SelectProgram(channel int, bank uint32, preset uint8) {
	if err := s.SelectProgramStrict(channel, bank, preset); err != nil {
		s.logger.Debug("program not in bank",
			slog.Int("channel", s.channel(channel)),
			slog.Uint64("bank", uint64(bank)),
			slog.Int("preset", int(preset)),
		)
	}
}

// SelectProgramStrict is SelectProgram that reports ErrUnknownProgram instead
// of ignoring pairs that are not in the bank.
func (s *Synth) SelectProgramStrict(channel int, bank uint32, preset uint8) error {
	ch := s.channel(channel)
	if bank <= 0xffff {
		if p, ok := s.bank.Lookup(uint16(bank), uint16(preset)); ok {
			s.channels[ch].program = p
			return nil
		}
	}
	return fmt.Errorf("%w: bank %d preset %d", ErrUnknownProgram, bank, preset)
}

// Program returns the preset bound to channel, or nil when none is.
func (s *Synth) Program(channel int) *soundfont.Preset {
	return s.channels[s.channel(channel)].program
}

// NoteOn starts every region of the channel's program that matches key and
// velocity. channel, key and velocity are clamped to their valid ranges; a
// velocity of 0 is a note off. When the pool is full a voice is stolen.
func (s *Synth) NoteOn(channel, key, velocity int) {
	ch := s.channel(channel)
	key = clampMIDI(key)
	velocity = clampMIDI(velocity)
	if velocity == 0 {
		s.NoteOff(ch, key)
		return
	}

	p := s.channels[ch].program
	if p == nil {
		return
	}

	s.notes++
	for i := range p.Regions {
		r := &p.Regions[i]
		if !r.Matches(uint8(key), uint8(velocity)) {
			continue
		}
		if class := r.Gen(soundfont.GenExclusiveClass); class != 0 {
			s.cutClass(ch, class)
		}
		v := s.allocate()
		v.setup(r, s.bank.SampleData, ch, key, velocity, s.notes, &s.cfg)
	}
}

// cutClass quickly releases voices of an exclusive class started by earlier
// notes on the channel.
func (s *Synth) cutClass(ch int, class int32) {
	for i := range s.voices {
		v := &s.voices[i]
		if v.active() && v.channel == ch && v.class == class && v.seq != s.notes {
			v.env.cut(s.cfg.SampleRate)
		}
	}
}

// allocate returns a free voice, or steals one. The free voice with the lowest
// index is used first. Otherwise the victim is chosen by, in order: already
// released, lowest envelope level, oldest note, lowest index. The victim is
// reused at once with no fade.
func (s *Synth) allocate() *voice {
	victim := -1
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active() {
			return v
		}
		if victim < 0 || quieter(v, &s.voices[victim]) {
			victim = i
		}
	}
	return &s.voices[victim]
}

func quieter(a, b *voice) bool {
	ar, br := a.env.stage == stageRelease, b.env.stage == stageRelease
	if ar != br {
		return ar
	}
	if a.env.level != b.env.level {
		return a.env.level < b.env.level
	}
	return a.seq < b.seq
}

// NoteOff moves the voices sounding (channel, key) into their release phase.
func (s *Synth) NoteOff(channel, key int) {
	ch := s.channel(channel)
	note := uint8(clampMIDI(key))
	pedal := s.channels[ch].pedal

	for i := range s.voices {
		v := &s.voices[i]
		if v.active() && !v.noteOff && v.channel == ch && v.note == note {
			v.release(pedal)
		}
	}
}

// SetSustain presses or lifts the sustain pedal of channel. Lifting it
// releases every note that was let go while it was down.
func (s *Synth) SetSustain(channel int, down bool) {
	ch := s.channel(channel)
	s.channels[ch].pedal = down
	if down {
		return
	}
	for i := range s.voices {
		v := &s.voices[i]
		if v.active() && v.channel == ch && v.sustained {
			v.release(false)
		}
	}
}

// AllNotesOff releases every voice of channel.
func (s *Synth) AllNotesOff(channel int) {
	ch := s.channel(channel)
	for i := range s.voices {
		v := &s.voices[i]
		if v.active() && v.channel == ch {
			v.release(false)
		}
	}
}

// AllSoundOff silences every voice of channel at once, skipping release.
func (s *Synth) AllSoundOff(channel int) {
	ch := s.channel(channel)
	for i := range s.voices {
		if s.voices[i].channel == ch {
			s.voices[i].env.finish()
		}
	}
}

// Reset silences all voices and restores every channel's controllers and
// default bank. Programs stay bound.
func (s *Synth) Reset() {
	for i := range s.voices {
		s.voices[i].env.finish()
	}
	for i := range s.channels {
		s.channels[i].reset(i)
	}
}

// ActiveVoices reports how many voices are not Finished.
func (s *Synth) ActiveVoices() int {
	n := 0
	for i := range s.voices {
		if s.voices[i].active() {
			n++
		}
	}
	return n
}

// VoiceStates appends the state of every pool slot to dst and returns it.
func (s *Synth) VoiceStates(dst []State) []State {
	for i := range s.voices {
		dst = append(dst, s.voices[i].state())
	}
	return dst
}

// Render advances the engine by len(left) frames and writes the mix into left
// and right, which must have equal length. The output is not clipped.
// Render does not allocate.
func (s *Synth) Render(left, right []float32) {
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]
	clear(left)
	clear(right)

	for i := range s.voices {
		v := &s.voices[i]
		if !v.active() {
			continue
		}
		c := &s.channels[v.channel]
		lg, rg := c.gains()
		v.render(left, right, c.bend, lg, rg)
	}
}

// RenderBlock renders frames frames into newly allocated buffers.
func (s *Synth) RenderBlock(frames int) (left, right []float32) {
	frames = max(frames, 0)
	left = make([]float32, frames)
	right = make([]float32, frames)
	s.Render(left, right)
	return left, right
}

// SampleRate implements audio.Source.
func (s *Synth) SampleRate() int { return s.cfg.SampleRate }

// Channels implements audio.Source; the stream is stereo.
func (s *Synth) Channels() int { return 2 }

// BufSize implements audio.Source.
func (s *Synth) BufSize() int { return scratchFrames * 2 }

// ReadSamples renders len(dst)/2 frames as interleaved stereo. The stream
// never ends.
func (s *Synth) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		frames := min((len(dst)-written)/2, scratchFrames)
		l, r := s.scratchL[:frames], s.scratchR[:frames]
		s.Render(l, r)
		for i := range frames {
			dst[written] = l[i]
			dst[written+1] = r[i]
			written += 2
		}
	}

	return written, nil
}

// Close implements audio.Source. It silences the synth.
func (s *Synth) Close() error {
	s.Reset()
	return nil
}
