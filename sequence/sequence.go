// SPDX-License-Identifier: EPL-2.0

// Package sequence turns a Standard MIDI File into a timed list of channel
// messages and plays it into a synth block by block.
package sequence

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const defaultBPM = 120.0

// Event is a channel message at an absolute time.
type Event struct {
	Time    float64 // seconds from the start of the file
	Tick    int64
	Track   int
	Message midi.Message
}

// Sequence is the merged, time ordered channel messages of every track.
type Sequence struct {
	Events   []Event
	Tracks   int
	Duration float64 // time of the last event
}

type rawEvent struct {
	tick  int64
	track int
	msg   smf.Message
}

// Load parses a format 0 or 1 file. Events of different tracks sharing a
// tick keep track order. Tempo changes from any track apply to all of them.
func Load(r io.Reader) (*Sequence, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSMF, err)
	}

	tickSeconds, err := tickDuration(s.TimeFormat)
	if err != nil {
		return nil, err
	}

	var raw []rawEvent
	for ti, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			raw = append(raw, rawEvent{tick: tick, track: ti, msg: ev.Message})
		}
	}
	slices.SortStableFunc(raw, func(a, b rawEvent) int {
		return cmp.Compare(a.tick, b.tick)
	})

	seq := &Sequence{Tracks: len(s.Tracks)}
	perTick := tickSeconds(defaultBPM)
	var now float64
	var last int64

	for _, ev := range raw {
		now += float64(ev.tick-last) * perTick
		last = ev.tick

		var bpm float64
		if ev.msg.GetMetaTempo(&bpm) {
			if bpm > 0 {
				perTick = tickSeconds(bpm)
			}
			continue
		}
		if !isChannelMessage(ev.msg) {
			continue
		}

		seq.Events = append(seq.Events, Event{
			Time:    now,
			Tick:    ev.tick,
			Track:   ev.track,
			Message: midi.Message(ev.msg),
		})
		seq.Duration = now
	}

	return seq, nil
}

// tickDuration returns a function giving the length of one tick in seconds at
// a tempo. SMPTE time ignores the tempo.
func tickDuration(tf smf.TimeFormat) (func(bpm float64) float64, error) {
	switch t := tf.(type) {
	case smf.MetricTicks:
		res := float64(t.Resolution())
		if res == 0 {
			return nil, fmt.Errorf("%w: zero ticks per quarter note", ErrMalformedSMF)
		}
		return func(bpm float64) float64 { return 60 / (bpm * res) }, nil
	case smf.TimeCode:
		perSecond := float64(t.FramesPerSecond) * float64(t.SubFrames)
		if perSecond == 0 {
			return nil, fmt.Errorf("%w: zero SMPTE resolution", ErrMalformedSMF)
		}
		return func(float64) float64 { return 1 / perSecond }, nil
	}
	return nil, fmt.Errorf("%w: unknown time format %v", ErrMalformedSMF, tf)
}

func isChannelMessage(m smf.Message) bool {
	return len(m) > 0 && m[0] >= 0x80 && m[0] < 0xF0
}
