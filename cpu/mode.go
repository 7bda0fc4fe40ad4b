package cpu

// Mode is an instruction addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMPLIED     = Mode(0)  // imp
	MODE_ACCUMULATOR = Mode(1)  // acc
	MODE_IMMEDIATE   = Mode(2)  // imm
	MODE_ZERO_PAGE   = Mode(3)  // zp
	MODE_ZERO_PAGE_X = Mode(4)  // zpx
	MODE_ZERO_PAGE_Y = Mode(5)  // zpy
	MODE_ABSOLUTE    = Mode(6)  // abs
	MODE_ABSOLUTE_X  = Mode(7)  // absx
	MODE_ABSOLUTE_Y  = Mode(8)  // absy
	MODE_INDIRECT    = Mode(9)  // ind
	MODE_INDIRECT_X  = Mode(10) // indx
	MODE_INDIRECT_Y  = Mode(11) // indy
	MODE_RELATIVE    = Mode(12) // rel
)

// Size returns the instruction length in bytes, opcode included.
func (mode Mode) Size() int {
	switch mode {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		return 1
	case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y, MODE_INDIRECT:
		return 3
	default:
		return 2
	}
}
