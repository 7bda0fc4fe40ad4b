package cpu

// Memory map of the toy computer.
const (
	MEMORY_SIZE      = 0x10000 // Size of the address space.
	ZERO_PAGE        = 0x0000  // Zero page, single byte addressable.
	STACK_PAGE       = 0x0100  // Hardware stack page.
	FRAMEBUFFER      = 0x0200  // 32x32 framebuffer of 4-bit colour indices.
	FRAMEBUFFER_SIZE = 0x0400  // Bytes in the framebuffer.
	CODE_ORIGIN      = 0x0600  // Load address of assembled code.
	RANDOM_CELL      = 0x00FE  // Pseudo-random byte, refreshed every tick.
	KEYPRESS_CELL    = 0x00FF  // Last key pressed, written by the display.

	SCREEN_WIDTH  = 32
	SCREEN_HEIGHT = 32
)

// Memory is the 64KB memory image shared by the interpreter and the display.
//
// The framebuffer and keypress cells are accessed without synchronization:
// the interpreter is the only writer of the framebuffer, the display the
// only writer of the keypress cell, and single byte accesses are allowed
// to be stale for a frame.
type Memory [MEMORY_SIZE]byte

// Reset zeroes the memory image.
func (mem *Memory) Reset() {
	clear(mem[:])
}

// Load copies code into memory at origin.
func (mem *Memory) Load(origin uint16, code []byte) (err error) {
	if int(origin)+len(code) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	copy(mem[origin:], code)
	return
}

// Read16 reads a little-endian word at addr.
func (mem *Memory) Read16(addr uint16) uint16 {
	return uint16(mem[addr]) | uint16(mem[addr+1])<<8
}

// Framebuffer returns the framebuffer region.
func (mem *Memory) Framebuffer() []byte {
	return mem[FRAMEBUFFER : FRAMEBUFFER+FRAMEBUFFER_SIZE]
}

// Keypress returns the keypress cell.
func (mem *Memory) Keypress() *byte {
	return &mem[KEYPRESS_CELL]
}

// ZeroPage returns the zero page.
func (mem *Memory) ZeroPage() []byte {
	return mem[ZERO_PAGE : ZERO_PAGE+0x100]
}

// StackPage returns the stack page.
func (mem *Memory) StackPage() []byte {
	return mem[STACK_PAGE : STACK_PAGE+0x100]
}
