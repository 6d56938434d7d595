// SPDX-License-Identifier: EPL-2.0

// Package sfpitch renders Standard MIDI Files through SoundFont 2 banks and
// estimates the pitch of audio streams.
//
// The work is split over a few packages:
//
//	soundfont  SoundFont 2 parsing, preset directory and playable regions
//	synth      polyphonic sample playback driven by notes or MIDI messages
//	pitch      McLeod pitch detection and a streaming tracker
//	sequence   Standard MIDI File timelines and block-wise playback
//	audio      the Source interface, resampling, mono mixing and windowing
//	formats    WAV, AIFF, MP3 and Ogg Vorbis decoders and a WAV writer
//
// This package joins them for the two common pipelines.
//
// # Rendering
//
//	bank, err := soundfont.Load(data)
//	if err != nil {
//	    return err
//	}
//	left, right, err := sfpitch.RenderSMF(ctx, bank, song, synth.DefaultConfig(), 512)
//
// RenderSMFTo streams the blocks instead of collecting them, which pairs
// with formats.WAVWriter:
//
//	w := formats.NewWAVWriter(out, cfg.SampleRate, 2)
//	err := sfpitch.RenderSMFTo(ctx, bank, song, cfg, 512, w.WriteStereo)
//
// # Pitch tracking
//
//	src, err := formats.Open("voice.ogg")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	estimates, err := sfpitch.TrackPitch(src, 0, 2048, 512)
//	for _, e := range estimates {
//	    fmt.Printf("%.3f s  %.1f Hz\n", e.Time, e.Frequency)
//	}
package sfpitch
