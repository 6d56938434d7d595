// SPDX-License-Identifier: EPL-2.0

// Package synth is a polyphonic SoundFont sample-playback engine.
//
// A Synth owns a table of channels, each bound to a preset of a
// soundfont.Bank, and a fixed pool of voices. Note and program events are
// applied between renders; Render then advances engine time by exactly the
// requested number of frames, so consecutive blocks are contiguous no matter
// how the caller sizes them.
//
// Out of range arguments never fail: channels are clamped into
// [0, Config.Channels), keys and velocities into [0, 127]. Selecting a program
// the bank does not declare leaves the channel unchanged; use
// SelectProgramStrict to get ErrUnknownProgram instead.
//
// Every voice moves through Attack, Sustain, Release and Finished. Finished
// voices are silent and are reused first. When the pool is full a note on
// steals a voice, preferring released voices, then the quietest, then the
// oldest, then the lowest pool slot, so a fixed event sequence always renders
// the same audio.
package synth
