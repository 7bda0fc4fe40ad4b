package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	assert.NoError(mem.Load(CODE_ORIGIN, []byte{0x34, 0x12}))
	assert.Equal(uint16(0x1234), mem.Read16(CODE_ORIGIN))

	mem[0xFFFF] = 0x78
	mem[0x0000] = 0x56
	assert.Equal(uint16(0x5678), mem.Read16(0xFFFF))

	assert.Equal(FRAMEBUFFER_SIZE, len(mem.Framebuffer()))
	mem.Framebuffer()[0] = 0x05
	assert.Equal(byte(0x05), mem[FRAMEBUFFER])

	*mem.Keypress() = 'd'
	assert.Equal(byte('d'), mem[KEYPRESS_CELL])

	assert.Equal(0x100, len(mem.StackPage()))
	mem.StackPage()[0xFF] = 0x42
	assert.Equal(byte(0x42), mem[0x01FF])

	assert.Equal(0x100, len(mem.ZeroPage()))
	mem.ZeroPage()[0x10] = 0x24
	assert.Equal(byte(0x24), mem[0x0010])

	mem.Reset()
	assert.Equal(byte(0), mem[CODE_ORIGIN])
	assert.Equal(byte(0), mem[KEYPRESS_CELL])
}

func TestMemory_LoadTooLarge(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	code := make([]byte, MEMORY_SIZE-CODE_ORIGIN+1)
	assert.ErrorIs(mem.Load(CODE_ORIGIN, code), ErrProgramTooLarge)

	assert.NoError(mem.Load(CODE_ORIGIN, code[1:]))
}
