package emulator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/int6502/int6502/cpu"
	"github.com/int6502/int6502/io"
)

func TestExitCode(t *testing.T) {
	assert := assert.New(t)

	_, open := os.Open("/nonexistent/int6502.asm")

	table := [](struct {
		err  error
		code int
	}){
		{nil, EXIT_OK},
		{ErrUsage, EXIT_ARGUMENTS},
		{fmt.Errorf("%w: too many", ErrUsage), EXIT_ARGUMENTS},
		{&cpu.ErrSyntax{LineNo: 1, Err: cpu.ErrSyntaxInvalid}, EXIT_SYNTAX},
		{io.ErrColorUnsupported, EXIT_COLOR},
		{open, EXIT_OPEN},
		{&fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, EXIT_OPEN},
		{&ErrRuntime{LineNo: 3, Err: cpu.ErrUnknownInstruction(0xff)}, EXIT_UNKNOWN_INSTRUCTION},
		{context.Canceled, EXIT_INTERRUPTED},
		{io.ErrInterrupted, EXIT_INTERRUPTED},
		{errors.New("boom"), EXIT_INTERNAL},
	}

	for _, entry := range table {
		assert.Equal(entry.code, ExitCode(entry.err), "%v", entry.err)
	}
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{Pc: 0x0612, Err: cpu.ErrUnknownInstruction(0x02)}
	assert.Equal("$0612: unknown instruction $02", err.Error())
	assert.ErrorIs(err, cpu.ErrUnknownInstruction(0))
}
