package emulator

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/int6502/int6502/cpu"
	"github.com/int6502/int6502/internal"
)

const (
	DUMP_WIDTH     = 16    // Bytes per dump line.
	CODE_DUMP_SIZE = 0x100 // Bytes of code shown in the report.
	FLAG_NAMES     = "N V - B D I Z C"
)

// Dump yields a blank line, the header, and rows of hex bytes of data,
// addressed from addr.
func Dump(header string, addr uint16, data []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield("") || !yield(header) {
			return
		}

		var line strings.Builder
		for row := range slices.Chunk(data, DUMP_WIDTH) {
			line.Reset()
			fmt.Fprintf(&line, "0x%04X:", addr)
			for _, value := range row {
				fmt.Fprintf(&line, " %02X", value)
			}
			addr += DUMP_WIDTH

			if !yield(line.String()) {
				return
			}
		}
	}
}

// Listing yields the disassembly of the program, with its labels, annotated
// with the source line that starts at each address.
func Listing(prog *cpu.Program) iter.Seq[string] {
	return func(yield func(string) bool) {
		if prog == nil || len(prog.Code) == 0 {
			return
		}

		if !yield("") || !yield("Disassembly:") {
			return
		}

		labels := map[uint16][]string{}
		for _, name := range slices.Sorted(maps.Keys(prog.Labels)) {
			addr, _ := prog.Label(name)
			labels[addr] = append(labels[addr], name)
		}

		for addr, text := range cpu.Disassemble(prog.Code, prog.Origin) {
			for _, name := range labels[addr] {
				if !yield(name + ":") {
					return
				}
			}

			line := fmt.Sprintf("0x%04X: %v", addr, text)
			if src, ok := prog.Debug(addr); ok && prog.Origin+uint16(src.Offset) == addr {
				line = fmt.Sprintf("%-24s; %d: %v", line, src.LineNo, src.Text)
			}

			if !yield(line) {
				return
			}
		}
	}
}

// Report yields the post-run report: registers, flags, memory dumps and
// the program listing.
func (emu *Emulator) Report(state cpu.State) iter.Seq[string] {
	mem := &emu.Image

	return internal.Concat(
		slices.Values([]string{
			state.String(),
			FLAG_NAMES,
			state.Flags.String(),
		}),
		Dump("Zero page dump:", cpu.ZERO_PAGE, mem.ZeroPage()),
		Dump("Stack dump:", cpu.STACK_PAGE, mem.StackPage()),
		Dump("GPU dump:", cpu.FRAMEBUFFER, mem.Framebuffer()),
		Dump("Code dump:", cpu.CODE_ORIGIN, mem[cpu.CODE_ORIGIN:cpu.CODE_ORIGIN+CODE_DUMP_SIZE]),
		Listing(emu.Program),
	)
}
