package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/int6502/int6502/cpu"
	"github.com/int6502/int6502/emulator"
	disp "github.com/int6502/int6502/io"
)

type options struct {
	verbose   bool
	defines   []string
	display   string
	listen    string
	interval  time.Duration
	seed      uint64
	noInspect bool
}

func usageError(err error) error {
	return fmt.Errorf("%w: %v", emulator.ErrUsage, err)
}

func newCommand(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "int6502 [flags] file",
		Short: "Assemble and run a 6502 program on a 32x32 colour display",
		Long: `int6502 assembles a 6502 assembly source file, loads it at $0600,
and runs it until a brk instruction. The 32x32 framebuffer at $0200 is
drawn while the program runs; $FE holds a fresh random byte for every
instruction and $FF holds the last key pressed.

After the program halts the registers, flags and memory are shown in
a scrollable view. Use the arrow keys to scroll and 'q' to quit.
`,
		Args: func(cmd *cobra.Command, args []string) (err error) {
			err = cobra.ExactArgs(1)(cmd, args)
			if err != nil {
				err = usageError(err)
			}
			return
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), opts, args[0], stdout)
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log assembly and execution")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "predefine a symbol, as NAME=VALUE")
	flags.StringVar(&opts.display, "display", "terminal",
		fmt.Sprintf("display to draw on, one of: %v", strings.Join(disp.Displays(), ", ")))
	flags.StringVar(&opts.listen, "listen", disp.WEBSOCKET_ADDR, "websocket display listen address")
	flags.DurationVar(&opts.interval, "interval", disp.FRAME_INTERVAL, "frame interval")
	flags.Uint64Var(&opts.seed, "seed", 0, "random number seed, 0 for time based")
	flags.BoolVar(&opts.noInspect, "no-inspect", false, "print the report instead of showing it")

	return cmd
}

// execute assembles and runs the program at path.
func execute(ctx context.Context, opts *options, path string, stdout io.Writer) (err error) {
	asm := &cpu.Assembler{Verbose: opts.verbose}
	for _, define := range opts.defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			err = usageError(fmt.Errorf("invalid define %q", define))
			return
		}
		asm.Predefine(name, value)
	}

	display, err := disp.NewDisplay(opts.display, disp.Options{
		Verbose:  opts.verbose,
		Addr:     opts.listen,
		Interval: opts.interval,
	})
	if err != nil {
		err = usageError(err)
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	term, isTerm := display.(*disp.Terminal)
	if isTerm {
		err = term.CheckColor()
		if err != nil {
			return
		}
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	emu := emulator.NewEmulator(seed)
	emu.Verbose = opts.verbose
	emu.Display = display

	err = emu.Load(prog)
	if err != nil {
		return
	}

	state, err := emu.Run(ctx)
	if err != nil {
		return
	}

	sc := &disp.Scroll{}
	for line := range emu.Report(state) {
		sc.AppendLine(line)
	}

	if isTerm && !opts.noInspect {
		err = term.Inspect(ctx, sc)
		if !errors.Is(err, disp.ErrNotTerminal) {
			return
		}
		err = nil
	}

	for _, line := range sc.Lines() {
		fmt.Fprintln(stdout, line)
	}

	return
}

// run executes the command line, and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	cmd := newCommand(stdout)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		log.Print(err)
		if errors.Is(err, emulator.ErrUsage) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
	}

	return emulator.ExitCode(err)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("int6502: ")

	var code int
	disp.RunMain(func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		code = run(ctx, os.Args[1:], os.Stdout)
		stop()
	})

	os.Exit(code)
}
