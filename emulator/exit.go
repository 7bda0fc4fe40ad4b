package emulator

import (
	"context"
	"errors"
	"io/fs"

	"github.com/int6502/int6502/cpu"
	"github.com/int6502/int6502/io"
)

// Process exit codes.
const (
	EXIT_OK                  = 0
	EXIT_ARGUMENTS           = 1
	EXIT_SYNTAX              = 2
	EXIT_COLOR               = 3
	EXIT_OPEN                = 4
	EXIT_INTERNAL            = 5
	EXIT_UNKNOWN_INSTRUCTION = 6
	EXIT_INTERRUPTED         = 130
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var syntax *cpu.ErrSyntax
	var path *fs.PathError

	switch {
	case err == nil:
		return EXIT_OK
	case errors.Is(err, ErrUsage):
		return EXIT_ARGUMENTS
	case errors.As(err, &syntax):
		return EXIT_SYNTAX
	case errors.Is(err, io.ErrColorUnsupported):
		return EXIT_COLOR
	case errors.As(err, &path):
		return EXIT_OPEN
	case errors.Is(err, cpu.ErrUnknownInstruction(0)):
		return EXIT_UNKNOWN_INSTRUCTION
	case errors.Is(err, context.Canceled), errors.Is(err, io.ErrInterrupted):
		return EXIT_INTERRUPTED
	}

	return EXIT_INTERNAL
}
