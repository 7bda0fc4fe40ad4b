package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_SetNZ(t *testing.T) {
	assert := assert.New(t)

	fl := &Flags{}
	fl.setNZ(0x00)
	assert.Equal(Flags{Z: true}, *fl)
	fl.setNZ(0x80)
	assert.Equal(Flags{N: true}, *fl)
	fl.setNZ(0x7F)
	assert.Equal(Flags{}, *fl)
}

func TestFlags_SetCarryOverflow(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op1, op2 uint16
		carry    bool
		overflow bool
	}){
		{0x7F, 0x01, false, true},
		{0xFF, 0x01, true, false},
		{0x80, 0x80, true, true},
		{0x40, 0x30, false, false},
		{0x05, 0xFC, true, false}, // 5 - 3
	}

	for _, entry := range table {
		fl := &Flags{}
		fl.setCarryOverflow(entry.op1, entry.op2, entry.op1+entry.op2)
		assert.Equal(entry.carry, fl.C, "%02x+%02x", entry.op1, entry.op2)
		assert.Equal(entry.overflow, fl.V, "%02x+%02x", entry.op1, entry.op2)
	}
}

func TestFlags_Pack(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(byte(0x20), Flags{}.Pack())
	assert.Equal(byte(0xFF), Flags{N: true, V: true, B: true, D: true, I: true, Z: true, C: true}.Pack())
	assert.Equal(byte(0xA1), Flags{N: true, C: true}.Pack())

	for value := range 256 {
		fl := Flags{}
		fl.Unpack(byte(value))
		assert.Equal(byte(value)|FLAG_UNUSED, fl.Pack())
	}
}

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0 0 1 0 0 0 0 0", Flags{}.String())
	assert.Equal("1 0 1 1 0 0 1 0", Flags{N: true, B: true, Z: true}.String())
}
