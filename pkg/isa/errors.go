package isa

import "errors"

// Section-local conditions. The section is skipped, or its record lacks an
// opcode, and the run continues.
var (
	ErrNoFormat      = errors.New("section has no Format block")
	ErrEmptyFormat   = errors.New("Format block has no tokens")
	ErrNoOpCode      = errors.New("no opcode found in Forms block")
	ErrInvalidOpCode = errors.New("invalid opcode in Forms block")
)

// Fatal conditions. The run aborts without output.
var (
	ErrUnrecognizedDocument = errors.New("unrecognized document shape")
	ErrDuplicateName        = errors.New("duplicate instruction name")
)
