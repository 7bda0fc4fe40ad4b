package emulator

import (
	"errors"

	"github.com/int6502/int6502/translate"
)

var f = translate.From

var (
	ErrUsage = errors.New(f("invalid arguments"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int    // Source line, zero if unknown.
	Pc     uint16 // Address of the failing instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("$%04x: %v", err.Pc, err.Err)
	}
	return f("line %d ($%04x): %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
