package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Decode(t *testing.T) {
	assert := assert.New(t)

	for inst, op := range opcodeMap {
		dec, ok := Decode(op)
		if assert.True(ok, inst.String()) {
			assert.Equal(inst, dec)
		}
		assert.Equal(inst.Size(), Length(op), inst.String())

		enc, ok := Opcode(inst.Mnemonic, inst.Mode)
		assert.True(ok, inst.String())
		assert.Equal(op, enc, inst.String())
	}
}

func TestOpcode_Unknown(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []byte{0x02, 0x03, 0x80, 0xFF} {
		_, ok := Decode(op)
		assert.False(ok)
		assert.Equal(0, Length(op))
	}

	_, ok := Opcode("lda", MODE_IMPLIED)
	assert.False(ok)
	_, ok = Opcode("sta", MODE_IMMEDIATE)
	assert.False(ok)
	_, ok = Opcode("xyz", MODE_ABSOLUTE)
	assert.False(ok)
}

func TestOpcode_Instructions(t *testing.T) {
	assert := assert.New(t)

	insts := Instructions()
	assert.Equal(len(opcodeMap), len(insts))

	last := -1
	for _, inst := range insts {
		op, ok := Opcode(inst.Mnemonic, inst.Mode)
		assert.True(ok)
		assert.Greater(int(op), last)
		last = int(op)
	}
}

func TestOpcode_Lengths(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     byte
		length int
	}){
		{0x00, 1}, // brk
		{0x0A, 1}, // asl a
		{0xA9, 2}, // lda #
		{0xB5, 2}, // lda zp,x
		{0xD0, 2}, // bne
		{0xA1, 2}, // lda (zp,x)
		{0x4C, 3}, // jmp abs
		{0x6C, 3}, // jmp (abs)
		{0x20, 3}, // jsr
		{0xBD, 3}, // lda abs,x
	}

	for _, entry := range table {
		assert.Equal(entry.length, Length(entry.op), "$%02x", entry.op)
	}
}

// Every instruction survives assembly of its disassembled form.
func TestOpcode_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, inst := range Instructions() {
		var arg uint16
		switch inst.Mode.Size() {
		case 2:
			arg = 0x10
		case 3:
			arg = 0x1234
		}

		source := formatInstruction(inst, arg, CODE_ORIGIN)
		if inst.Mode == MODE_RELATIVE || inst.Mnemonic == "jsr" {
			source = "target: " + inst.Mnemonic + " target"
		}

		asm := &Assembler{}
		prog, err := asm.Assemble(source)
		if !assert.NoError(err, source) {
			continue
		}

		if assert.Equal(inst.Size(), len(prog.Code), source) {
			dec, ok := Decode(prog.Code[0])
			assert.True(ok, source)
			assert.Equal(inst, dec, source)
		}
	}
}
