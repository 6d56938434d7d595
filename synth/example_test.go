// SPDX-License-Identifier: EPL-2.0

package synth_test

import (
	"fmt"

	"github.com/ik5/sfpitch/internal/audiotest"
	"github.com/ik5/sfpitch/synth"
)

func Example() {
	sess, err := synth.NewSession(audiotest.SineBank(), synth.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, p := range sess.Presets() {
		fmt.Printf("%03d:%03d %s\n", p.Bank, p.Preset, p.Name)
	}

	sess.SelectProgram(0, 0, 0)
	sess.NoteOn(0, 69, 100)
	left, right := sess.RenderBlock(512)
	fmt.Println(len(left), len(right), sess.ActiveVoices())

	sess.NoteOff(0, 69)
	sess.RenderBlock(44100)
	fmt.Println(sess.ActiveVoices())

	// Output:
	// 000:000 Sine
	// 512 512 1
	// 0
}
