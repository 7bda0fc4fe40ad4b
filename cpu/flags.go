package cpu

import (
	"fmt"
)

// Processor status bits, as packed by php.
const (
	FLAG_C      = byte(1 << 0) // Carry
	FLAG_Z      = byte(1 << 1) // Zero
	FLAG_I      = byte(1 << 2) // Interrupt disable
	FLAG_D      = byte(1 << 3) // Decimal
	FLAG_B      = byte(1 << 4) // Break
	FLAG_UNUSED = byte(1 << 5) // Always set when packed
	FLAG_V      = byte(1 << 6) // Overflow
	FLAG_N      = byte(1 << 7) // Negative
)

// Flags is the processor status.
type Flags struct {
	N, V, B, D, I, Z, C bool
}

// setNZ sets the negative and zero flags from a result.
func (fl *Flags) setNZ(value byte) {
	fl.N = (value & 0x80) != 0
	fl.Z = value == 0
}

// setCarryOverflow sets the carry and overflow flags from an 8-bit
// addition of op1 and op2 whose 9-bit result is result.
func (fl *Flags) setCarryOverflow(op1, op2, result uint16) {
	fl.C = (result & 0x100) != 0
	fl.V = ((op1 ^ result) & (op2 ^ result) & 0x80) != 0
}

// Carry returns the carry flag as an addend.
func (fl *Flags) Carry() uint16 {
	if fl.C {
		return 1
	}
	return 0
}

// Pack returns the status byte, with the unused bit set.
func (fl Flags) Pack() (value byte) {
	value = FLAG_UNUSED
	for _, bit := range []struct {
		set  bool
		mask byte
	}{
		{fl.N, FLAG_N},
		{fl.V, FLAG_V},
		{fl.B, FLAG_B},
		{fl.D, FLAG_D},
		{fl.I, FLAG_I},
		{fl.Z, FLAG_Z},
		{fl.C, FLAG_C},
	} {
		if bit.set {
			value |= bit.mask
		}
	}

	return
}

// Unpack restores every flag from a status byte.
func (fl *Flags) Unpack(value byte) {
	fl.N = (value & FLAG_N) != 0
	fl.V = (value & FLAG_V) != 0
	fl.B = (value & FLAG_B) != 0
	fl.D = (value & FLAG_D) != 0
	fl.I = (value & FLAG_I) != 0
	fl.Z = (value & FLAG_Z) != 0
	fl.C = (value & FLAG_C) != 0
}

func bit(set bool) int {
	if set {
		return 1
	}
	return 0
}

// String returns the flag values in N V - B D I Z C order.
func (fl Flags) String() string {
	return fmt.Sprintf("%d %d 1 %d %d %d %d %d",
		bit(fl.N), bit(fl.V), bit(fl.B), bit(fl.D), bit(fl.I), bit(fl.Z), bit(fl.C))
}
