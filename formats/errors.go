// SPDX-License-Identifier: EPL-2.0

package formats

import "errors"

var (
	// ErrUnsupportedFormat indicates no decoder is registered for a file extension
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrOnlyPCM16bitSupported indicates a WAV or AIFF that is not 16-bit integer PCM
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")

	ErrNotWAV  = errors.New("not a WAV file")
	ErrNotAIFF = errors.New("not an AIFF file")

	// ErrInvalidChannels is returned by the WAV writer for interleaved input
	// that is not a whole number of frames
	ErrInvalidChannels = errors.New("sample count must be a multiple of channels")
)
