// SPDX-License-Identifier: EPL-2.0

package sequence

import "errors"

var (
	ErrMalformedSMF     = errors.New("malformed standard MIDI file")
	ErrInvalidBlockSize = errors.New("block size must be positive")
)
