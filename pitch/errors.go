// SPDX-License-Identifier: EPL-2.0

package pitch

import "errors"

var (
	ErrInsufficientSamples = errors.New("window shorter than the detector size")
	ErrWindowLength        = errors.New("window longer than the detector size")
	ErrInvalidWindowSize   = errors.New("window size must be even and at least 4")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidHop          = errors.New("hop must be positive")
)
