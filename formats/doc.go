// SPDX-License-Identifier: EPL-2.0

// Package formats decodes audio files into audio.Source streams and writes
// rendered audio back out as WAV.
//
// Decoders:
//
//	WAV     16-bit integer PCM (github.com/go-audio/wav)
//	AIFF    16-bit (github.com/go-audio/aiff)
//	MP3     always stereo (github.com/hajimehoshi/go-mp3)
//	Vorbis  Ogg Vorbis (github.com/jfreymuth/oggvorbis)
//
// Open picks the decoder from the file extension:
//
//	src, err := formats.Open("take.ogg")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// WAVWriter encodes float32 blocks, for example the output of a synth, as
// 16-bit PCM:
//
//	f, _ := os.Create("out.wav")
//	w := formats.NewWAVWriter(f, 44100, 2)
//	_ = w.WriteStereo(left, right)
//	_ = w.Close()
package formats
