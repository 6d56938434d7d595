// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sfpitch/audio"
	"github.com/ik5/sfpitch/internal/audiotest"
)

func Example_resampler() {
	source := audiotest.NewSineSource(44100, 1, 44100, 440) // one second
	resampler := audio.NewResampler(source, 16000)

	fmt.Printf("Output sample rate: %d Hz\n", resampler.SampleRate())

	buf := make([]float32, 4096)
	total := 0
	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Printf("Total samples read: %d\n", total)
	// Output:
	// Output sample rate: 16000 Hz
	// Total samples read: 16000
}

// Example_processingChain resamples a stereo stream, folds it to mono and
// cuts it into half-overlapping windows, the shape the pitch tracker reads.
func Example_processingChain() {
	source := audiotest.NewSineSource(48000, 2, 48000, 220)
	mono := audio.NewMonoMixer(audio.NewResampler(source, 44100))

	windows, err := audio.NewWindower(mono, 2048, 1024)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer windows.Close()

	count := 0
	var last int64
	for {
		_, start, err := windows.Next()
		if err != nil {
			break
		}
		count++
		last = start
	}

	fmt.Println(count, last)
	// Output: 42 41984
}

type wavStub struct{}

func (wavStub) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSilentSource(8000, 1, 8), nil
}

func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", wavStub{})
	registry.Register(".WAVE", wavStub{})

	_, ok := registry.Get("WAV")
	fmt.Println(ok, registry.Formats())
	// Output: true [wav wave]
}
