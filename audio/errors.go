// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidWindow is returned for a window size or hop below one sample
	ErrInvalidWindow = errors.New("window size and hop must be positive")
)
