package cpu

import (
	"fmt"
	"log"
	"math/rand/v2"
)

// State is a snapshot of the registers.
type State struct {
	A, X, Y byte
	SP      byte
	PC      uint16
	Flags   Flags
}

// String returns the registers in report form.
func (st State) String() string {
	return fmt.Sprintf("a = $%02x, x = $%02x, y = $%02x, sp = $%02x, pc = $%04x",
		st.A, st.X, st.Y, st.SP, st.PC)
}

// Cpu is the interpreter for the 6502 instruction set.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory  *Memory    // Memory image.
	Rand    *rand.Rand // Source of the random byte cell.
	Program *Program   // Optional listing, for verbose traces.

	A, X, Y byte   // Registers.
	PC      uint16 // Program counter.
	Stack   Stack  // Hardware stack.
	Flags   Flags  // Processor status.

	Ticks int // Instructions executed.
}

// NewCpu creates a CPU attached to a memory image.
func NewCpu(mem *Memory, seed uint64) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: mem,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x6502)),
	}
	cpu.Reset()

	return
}

// Reset clears the registers and points PC at the code origin.
// The memory image is left untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.PC = CODE_ORIGIN
	cpu.Stack = Stack{Memory: cpu.Memory}
	cpu.Stack.Reset()
	cpu.Flags = Flags{}
	cpu.Ticks = 0
}

// State returns a snapshot of the registers.
func (cpu *Cpu) State() State {
	return State{
		A:     cpu.A,
		X:     cpu.X,
		Y:     cpu.Y,
		SP:    cpu.Stack.Pointer,
		PC:    cpu.PC,
		Flags: cpu.Flags,
	}
}

// Halted reports whether the break flag has stopped execution.
func (cpu *Cpu) Halted() bool {
	return cpu.Flags.B
}

// Run executes until the CPU halts.
//
// There is no cancellation; a program that never halts never returns.
func (cpu *Cpu) Run() (state State, err error) {
	for !cpu.Halted() {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	state = cpu.State()
	return
}

// address returns the effective address of the operand of the
// instruction at PC.
func (cpu *Cpu) address(mode Mode) (addr uint16) {
	mem := cpu.Memory
	arg := cpu.PC + 1

	switch mode {
	case MODE_IMMEDIATE:
		addr = arg
	case MODE_ZERO_PAGE:
		addr = uint16(mem[arg])
	case MODE_ZERO_PAGE_X:
		addr = uint16(mem[arg] + cpu.X)
	case MODE_ZERO_PAGE_Y:
		addr = uint16(mem[arg] + cpu.Y)
	case MODE_ABSOLUTE:
		addr = mem.Read16(arg)
	case MODE_ABSOLUTE_X:
		addr = mem.Read16(arg) + uint16(cpu.X)
	case MODE_ABSOLUTE_Y:
		addr = mem.Read16(arg) + uint16(cpu.Y)
	case MODE_INDIRECT:
		addr = mem.Read16(mem.Read16(arg))
	case MODE_INDIRECT_X:
		addr = mem.Read16(uint16(mem[arg] + cpu.X))
	case MODE_INDIRECT_Y:
		addr = mem.Read16(uint16(mem[arg])) + uint16(cpu.Y)
	}

	return
}

// load reads the operand value.
func (cpu *Cpu) load(mode Mode) byte {
	if mode == MODE_ACCUMULATOR {
		return cpu.A
	}
	return cpu.Memory[cpu.address(mode)]
}

// store writes the operand value.
func (cpu *Cpu) store(mode Mode, value byte) {
	if mode == MODE_ACCUMULATOR {
		cpu.A = value
		return
	}
	cpu.Memory[cpu.address(mode)] = value
}

// compare sets the flags for reg - value.
func (cpu *Cpu) compare(reg byte, value byte) {
	cpu.Flags.C = reg >= value
	cpu.Flags.setNZ(reg - value)
}

// add adds value and the carry to the accumulator.
func (cpu *Cpu) add(value byte) {
	result := uint16(cpu.A) + uint16(value) + cpu.Flags.Carry()
	cpu.Flags.setCarryOverflow(uint16(cpu.A), uint16(value), result)
	cpu.A = byte(result)
	cpu.Flags.setNZ(cpu.A)
}

// branch takes a relative branch if cond holds.
func (cpu *Cpu) branch(cond bool, next uint16) uint16 {
	if cond {
		next += uint16(int8(cpu.Memory[cpu.PC+1]))
	}
	return next
}

// Tick executes a single instruction.
func (cpu *Cpu) Tick() (err error) {
	mem := cpu.Memory

	mem[RANDOM_CELL] = byte(cpu.Rand.UintN(256))

	op := mem[cpu.PC]
	inst, ok := Decode(op)
	if !ok {
		err = ErrUnknownInstruction(op)
		return
	}

	if cpu.Verbose {
		depth := cpu.Stack.Depth()
		if line, ok := cpu.Program.Debug(cpu.PC); ok {
			log.Printf("%04x: %v [stack %d] ; %v: %v", cpu.PC, inst, depth, line.LineNo, line.Text)
		} else {
			log.Printf("%04x: %v [stack %d]", cpu.PC, inst, depth)
		}
	}

	mode := inst.Mode
	next := cpu.PC + uint16(Length(op))
	fl := &cpu.Flags

	switch inst.Mnemonic {
	case "lda":
		cpu.A = cpu.load(mode)
		fl.setNZ(cpu.A)
	case "ldx":
		cpu.X = cpu.load(mode)
		fl.setNZ(cpu.X)
	case "ldy":
		cpu.Y = cpu.load(mode)
		fl.setNZ(cpu.Y)
	case "sta":
		cpu.store(mode, cpu.A)
	case "stx":
		cpu.store(mode, cpu.X)
	case "sty":
		cpu.store(mode, cpu.Y)
	case "adc":
		cpu.add(cpu.load(mode))
	case "sbc":
		// Inverted carry: a - m - (1 - c) == a + ^m + c
		cpu.add(^cpu.load(mode))
	case "and":
		cpu.A &= cpu.load(mode)
		fl.setNZ(cpu.A)
	case "ora":
		cpu.A |= cpu.load(mode)
		fl.setNZ(cpu.A)
	case "eor":
		cpu.A ^= cpu.load(mode)
		fl.setNZ(cpu.A)
	case "bit":
		value := cpu.load(mode)
		fl.N = (value & 0x80) != 0
		fl.V = (value & 0x40) != 0
		fl.Z = (value & cpu.A) == 0
	case "cmp":
		cpu.compare(cpu.A, cpu.load(mode))
	case "cpx":
		cpu.compare(cpu.X, cpu.load(mode))
	case "cpy":
		cpu.compare(cpu.Y, cpu.load(mode))
	case "asl":
		value := cpu.load(mode)
		fl.C = (value & 0x80) != 0
		value <<= 1
		cpu.store(mode, value)
		fl.setNZ(value)
	case "lsr":
		value := cpu.load(mode)
		fl.C = (value & 0x01) != 0
		value >>= 1
		cpu.store(mode, value)
		fl.setNZ(value)
	case "rol":
		value := cpu.load(mode)
		carry := byte(fl.Carry())
		fl.C = (value & 0x80) != 0
		value = (value << 1) | carry
		cpu.store(mode, value)
		fl.setNZ(value)
	case "ror":
		value := cpu.load(mode)
		carry := byte(fl.Carry())
		fl.C = (value & 0x01) != 0
		value = (value >> 1) | (carry << 7)
		cpu.store(mode, value)
		fl.setNZ(value)
	case "inc":
		value := cpu.load(mode) + 1
		cpu.store(mode, value)
		fl.setNZ(value)
	case "dec":
		value := cpu.load(mode) - 1
		cpu.store(mode, value)
		fl.setNZ(value)
	case "inx":
		cpu.X++
		fl.setNZ(cpu.X)
	case "iny":
		cpu.Y++
		fl.setNZ(cpu.Y)
	case "dex":
		cpu.X--
		fl.setNZ(cpu.X)
	case "dey":
		cpu.Y--
		fl.setNZ(cpu.Y)
	case "tax":
		cpu.X = cpu.A
		fl.setNZ(cpu.X)
	case "tay":
		cpu.Y = cpu.A
		fl.setNZ(cpu.Y)
	case "txa":
		cpu.A = cpu.X
		fl.setNZ(cpu.A)
	case "tya":
		cpu.A = cpu.Y
		fl.setNZ(cpu.A)
	case "tsx":
		cpu.X = cpu.Stack.Pointer
		fl.setNZ(cpu.X)
	case "txs":
		cpu.Stack.Pointer = cpu.X
	case "pha":
		cpu.Stack.Push(cpu.A)
	case "php":
		cpu.Stack.Push(fl.Pack())
	case "pla":
		cpu.A = cpu.Stack.Pull()
		fl.setNZ(cpu.A)
	case "plp":
		fl.Unpack(cpu.Stack.Pull())
	case "bpl":
		next = cpu.branch(!fl.N, next)
	case "bmi":
		next = cpu.branch(fl.N, next)
	case "bvc":
		next = cpu.branch(!fl.V, next)
	case "bvs":
		next = cpu.branch(fl.V, next)
	case "bcc":
		next = cpu.branch(!fl.C, next)
	case "bcs":
		next = cpu.branch(fl.C, next)
	case "bne":
		next = cpu.branch(!fl.Z, next)
	case "beq":
		next = cpu.branch(fl.Z, next)
	case "jmp":
		if mode == MODE_INDIRECT {
			next = cpu.address(MODE_INDIRECT)
		} else {
			next = mem.Read16(cpu.PC + 1)
		}
	case "jsr":
		ret := cpu.PC + 2
		cpu.Stack.Push(byte(ret >> 8))
		cpu.Stack.Push(byte(ret))
		next = mem.Read16(cpu.PC + 1)
	case "rts":
		lo := uint16(cpu.Stack.Pull())
		hi := uint16(cpu.Stack.Pull())
		next = (hi<<8 | lo) + 1
	case "brk":
		fl.B = true
	case "rti":
		fl.B = false
	case "clc":
		fl.C = false
	case "sec":
		fl.C = true
	case "cli":
		fl.I = false
	case "sei":
		fl.I = true
	case "cld":
		fl.D = false
	case "sed":
		fl.D = true
	case "clv":
		fl.V = false
	case "nop":
	default:
		err = ErrUnknownInstruction(op)
		return
	}

	cpu.PC = next
	cpu.Ticks++

	return
}
