package cpu

import (
	"errors"

	"github.com/int6502/int6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrProgramTooLarge = errors.New(f("program does not fit in memory"))

	// Assembler errors
	ErrSyntaxInvalid   = errors.New(f("invalid syntax"))
	ErrOperandMissing  = errors.New(f("expected operand"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrDefineSyntax    = errors.New(f("define syntax"))
	ErrReferenceMode   = errors.New(f("illegal reference mode"))
	ErrReferenceBounds = errors.New(f("reference outside of code"))
)

// ErrSyntax locates an assembly error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	if len(err.Line) == 0 {
		return f("error at line %d: %v", err.LineNo, err.Err)
	}
	return f("error at line %d '%v': %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown instruction \"%v\"", string(err))
}

type ErrOperandExtra string

func (err ErrOperandExtra) Error() string {
	return f("too many operands for \"%v\" instruction", string(err))
}

type ErrModeUnsupported string

func (err ErrModeUnsupported) Error() string {
	return f("this addressing mode is not supported by \"%v\" instruction", string(err))
}

type ErrNumberInvalid string

func (err ErrNumberInvalid) Error() string {
	return f("invalid number \"%v\"", string(err))
}

type ErrNumberTooLarge string

func (err ErrNumberTooLarge) Error() string {
	return f("number \"%v\" is too large", string(err))
}

type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("invalid label name: \"%v\"", string(err))
}

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label \"%v\" not found", string(err))
}

type ErrLabelTooFar string

func (err ErrLabelTooFar) Error() string {
	return f("label \"%v\" is too far", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrUnknownInstruction is raised when the interpreter fetches an opcode
// that has no encoding.
type ErrUnknownInstruction byte

func (err ErrUnknownInstruction) Error() string {
	return f("unknown instruction $%02x", byte(err))
}

func (err ErrUnknownInstruction) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownInstruction)
	return
}
