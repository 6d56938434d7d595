// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives shared by the decoders,
// the synth and the pitch tracker.
//
// # Source Interface
//
// Everything that produces PCM implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32, nominally in [-1, 1]. Decoders in the
// formats package, synth.Synth and the processors below all satisfy it, so
// they chain:
//
//	src, _ := formats.Open("take.wav")
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 44100))
//	windows, _ := audio.NewWindower(mono, 2048, 512)
//
// # Processors
//
//   - Resampler changes the sample rate with cubic interpolation and a
//     one-pole anti-alias filter when downsampling.
//   - MonoMixer averages all channels into one.
//   - Windower cuts a mono stream into fixed size, hop spaced windows.
//
// After their first read none of them allocate.
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", formats.WAV{})
//	decoder, ok := registry.Get(".WAV")
//
// # Error Handling
//
// ReadSamples may return data together with io.EOF; a read of 0 with io.EOF
// ends the stream:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
