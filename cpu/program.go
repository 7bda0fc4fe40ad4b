package cpu

import (
	"slices"
)

// Line is a source line that emitted code.
type Line struct {
	LineNo int    // Source line number.
	Offset int    // Offset of the first byte emitted.
	Size   int    // Number of bytes emitted.
	Text   string // Source text, without comment.
}

// Program is the output of the assembler.
type Program struct {
	Origin uint16         // Load address.
	Code   []byte         // Linked machine code.
	Lines  []Line         // Listing, in code order.
	Labels map[string]int // Label offsets within Code.
}

// Debug returns the source line that emitted the byte at address pc.
// A nil Program has no listing.
func (prog *Program) Debug(pc uint16) (line Line, ok bool) {
	if prog == nil || pc < prog.Origin {
		return
	}

	offset := int(pc - prog.Origin)
	n, found := slices.BinarySearchFunc(prog.Lines, offset, func(line Line, offset int) int {
		switch {
		case offset < line.Offset:
			return 1
		case offset >= line.Offset+line.Size:
			return -1
		}
		return 0
	})
	if !found {
		return
	}

	line = prog.Lines[n]
	ok = true
	return
}

// Label returns the load address of a label.
func (prog *Program) Label(name string) (addr uint16, ok bool) {
	offset, ok := prog.Labels[name]
	if !ok {
		return
	}

	addr = prog.Origin + uint16(offset)
	return
}
