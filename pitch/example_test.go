// SPDX-License-Identifier: EPL-2.0

package pitch_test

import (
	"fmt"

	"github.com/ik5/sfpitch/internal/audiotest"
	"github.com/ik5/sfpitch/pitch"
)

func ExampleDetector_DetectPitch() {
	det, err := pitch.New(44100, 2048)
	if err != nil {
		fmt.Println(err)
		return
	}

	freq, err := det.DetectPitch(audiotest.Sine(44100, 2048, 440, 0.8))
	if err != nil {
		fmt.Println(err)
		return
	}

	name, octave, _ := pitch.NoteName(float64(freq))
	fmt.Printf("%.0f Hz %s%d\n", freq, name, octave)

	silent, _ := det.DetectPitch(make([]float32, 2048))
	fmt.Println(silent)

	_, err = det.DetectPitch(make([]float32, 100))
	fmt.Println(err)
	// Output:
	// 440 Hz A4
	// 0
	// window shorter than the detector size: got 100 samples, want 2048
}
