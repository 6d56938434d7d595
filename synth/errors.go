// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	// ErrUnknownProgram is returned by SelectProgramStrict when the bank has
	// no preset at the requested (bank, preset) pair.
	ErrUnknownProgram = errors.New("unknown program")

	// ErrNilBank is returned when a synth is built without an instrument bank.
	ErrNilBank = errors.New("nil instrument bank")
)
