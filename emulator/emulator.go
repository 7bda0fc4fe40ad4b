package emulator

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/int6502/int6502/cpu"
	"github.com/int6502/int6502/io"
)

// CANCEL_CHECK is the number of instructions run between cancellation checks.
const CANCEL_CHECK = 1024

// Emulator state. Memory image + CPU + display.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Display  io.Display   // Display collaborator.

	Image cpu.Memory // Memory image shared with the display.
}

// NewEmulator creates a new emulator with no display.
func NewEmulator(seed uint64) (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{Origin: cpu.CODE_ORIGIN},
		Display: io.Null{},
	}
	emu.Cpu = cpu.NewCpu(&emu.Image, seed)

	return
}

// Load clears memory, copies the program to its origin, and resets the CPU.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Image.Reset()

	err = emu.Image.Load(prog.Origin, prog.Code)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Cpu.Program = prog
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes at $%04x", len(prog.Code), prog.Origin)
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	line, _ := emu.Program.Debug(emu.Cpu.PC)
	return line.LineNo
}

// Tick performs a single instruction, and reports whether the CPU halted.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.PC
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run executes the loaded program while the display draws the framebuffer.
//
// The interpreter stops when the CPU halts, an instruction fails, the
// display fails, or ctx is done. The display is then told to stop, draws
// its final frame, and Run returns the final register state.
func (emu *Emulator) Run(ctx context.Context) (state cpu.State, err error) {
	stop, halt := context.WithCancel(ctx)
	defer halt()

	g, gctx := errgroup.WithContext(stop)

	g.Go(func() (err error) {
		defer halt()

		for n := 0; ; n++ {
			if n%CANCEL_CHECK == 0 && gctx.Err() != nil {
				err = gctx.Err()
				return
			}

			var done bool
			done, err = emu.Tick()
			if err != nil || done {
				return
			}
		}
	})

	display := emu.Display
	if display == nil {
		display = io.Null{}
	}

	g.Go(func() error {
		return display.Render(gctx, emu.Image.Keypress(), emu.Image.Framebuffer())
	})

	err = g.Wait()
	if err != nil {
		return
	}

	state = emu.Cpu.State()

	if emu.Verbose {
		log.Printf("emulator: halted after %d instructions", emu.Cpu.Ticks)
	}

	return
}
