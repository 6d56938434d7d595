// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedBank is wrapped by every structural load failure.
	ErrMalformedBank = errors.New("malformed instrument bank")

	// ErrNotSoundFont indicates the blob is not a RIFF "sfbk" container
	ErrNotSoundFont = fmt.Errorf("%w: not a RIFF sfbk file", ErrMalformedBank)

	// ErrUnsupportedVersion indicates an ifil major version other than 2
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrMalformedBank)

	// ErrChunkSize indicates a truncated blob or a chunk whose size disagrees with its contents
	ErrChunkSize = fmt.Errorf("%w: inconsistent chunk size", ErrMalformedBank)

	// ErrMissingChunk indicates a mandatory chunk is absent
	ErrMissingChunk = fmt.Errorf("%w: missing required chunk", ErrMalformedBank)

	// ErrBadIndex indicates a bag, generator, instrument or sample reference out of range
	ErrBadIndex = fmt.Errorf("%w: index out of range", ErrMalformedBank)
)
