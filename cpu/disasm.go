package cpu

import (
	"fmt"
	"iter"
)

// Disassemble iterates over code loaded at origin, yielding the address
// and source text of each instruction.
//
// Bytes that do not decode, and truncated instructions, are shown as dcb.
func Disassemble(code []byte, origin uint16) iter.Seq2[uint16, string] {
	return func(yield func(addr uint16, text string) bool) {
		for n := 0; n < len(code); {
			addr := origin + uint16(n)

			inst, ok := Decode(code[n])
			if !ok || n+inst.Size() > len(code) {
				if !yield(addr, fmt.Sprintf("dcb $%02x", code[n])) {
					return
				}
				n++
				continue
			}

			var arg uint16
			switch inst.Size() {
			case 2:
				arg = uint16(code[n+1])
			case 3:
				arg = uint16(code[n+1]) | uint16(code[n+2])<<8
			}

			if !yield(addr, formatInstruction(inst, arg, addr)) {
				return
			}
			n += inst.Size()
		}
	}
}

// formatInstruction renders an instruction and its operand at addr.
func formatInstruction(inst Instruction, arg uint16, addr uint16) string {
	mn := inst.Mnemonic

	switch inst.Mode {
	case MODE_ACCUMULATOR:
		return mn + " a"
	case MODE_IMMEDIATE:
		return fmt.Sprintf("%v #$%02x", mn, arg)
	case MODE_ZERO_PAGE:
		return fmt.Sprintf("%v $%02x", mn, arg)
	case MODE_ZERO_PAGE_X:
		return fmt.Sprintf("%v $%02x,x", mn, arg)
	case MODE_ZERO_PAGE_Y:
		return fmt.Sprintf("%v $%02x,y", mn, arg)
	case MODE_ABSOLUTE:
		return fmt.Sprintf("%v $%04x", mn, arg)
	case MODE_ABSOLUTE_X:
		return fmt.Sprintf("%v $%04x,x", mn, arg)
	case MODE_ABSOLUTE_Y:
		return fmt.Sprintf("%v $%04x,y", mn, arg)
	case MODE_INDIRECT:
		return fmt.Sprintf("%v ($%04x)", mn, arg)
	case MODE_INDIRECT_X:
		return fmt.Sprintf("%v ($%02x,x)", mn, arg)
	case MODE_INDIRECT_Y:
		return fmt.Sprintf("%v ($%02x),y", mn, arg)
	case MODE_RELATIVE:
		target := addr + 2 + uint16(int8(arg))
		return fmt.Sprintf("%v $%04x", mn, target)
	}

	return mn
}
