// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/sfpitch/audio"
)

// AIFF decodes 16-bit AIFF streams.
type AIFF struct{}

func (AIFF) Decode(r io.Reader) (audio.Source, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAIFF
	}
	dec.ReadInfo()
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyPCM16bitSupported, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, fmt.Errorf("%w: missing COMM chunk", ErrNotAIFF)
	}

	return newIntSource(dec, format, int(dec.BitDepth)), nil
}
