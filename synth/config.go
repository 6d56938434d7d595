// SPDX-License-Identifier: EPL-2.0

package synth

import "log/slog"

const (
	DefaultSampleRate = 44100
	DefaultPolyphony  = 64
	DefaultChannels   = 16
	DefaultGain       = 0.2

	// percussionChannel is MIDI channel 10, which starts on bank 128
	percussionChannel = 9
	percussionBank    = 128

	// scratchFrames sizes the buffers ReadSamples renders through
	scratchFrames = 4096
)

// Config holds the engine settings. Zero or out-of-range fields fall back to
// the defaults.
type Config struct {
	// SampleRate of the rendered stream in Hz.
	SampleRate int
	// Polyphony is the size of the voice pool.
	Polyphony int
	// Channels is the number of program slots; never fewer than 16.
	Channels int
	// Gain scales the mixed output.
	Gain float32
	// Logger receives setup diagnostics. It is never used while rendering.
	Logger *slog.Logger
}

// DefaultConfig returns 44.1 kHz, 64 voices, 16 channels and a gain of 0.2.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Polyphony:  DefaultPolyphony,
		Channels:   DefaultChannels,
		Gain:       DefaultGain,
	}
}

func (c Config) normalize() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Polyphony <= 0 {
		c.Polyphony = DefaultPolyphony
	}
	if c.Channels < DefaultChannels {
		c.Channels = DefaultChannels
	}
	if c.Gain <= 0 {
		c.Gain = DefaultGain
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
