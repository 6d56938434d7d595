// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/sfpitch/audio"
)

// WAV decodes 16-bit integer PCM RIFF/WAVE streams.
type WAV struct{}

func (WAV) Decode(r io.Reader) (audio.Source, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWAV
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWAV, err)
	}
	if dec.WavAudioFormat != 1 || dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: format %d, %d bits", ErrOnlyPCM16bitSupported, dec.WavAudioFormat, dec.BitDepth)
	}

	return newIntSource(dec, dec.Format(), int(dec.BitDepth)), nil
}

// readSeeker returns r when it can seek, otherwise buffers it in memory; the
// go-audio decoders need to seek between chunks.
func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
