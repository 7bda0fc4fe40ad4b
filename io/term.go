package io

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiReset      = "\x1b[0m"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiAltScreen  = "\x1b[?1049h"
	ansiMainScreen = "\x1b[?1049l"
)

// Terminal draws the framebuffer on an ANSI truecolor terminal.
type Terminal struct {
	In       *os.File            // Keyboard input, nil for none.
	Out      io.Writer           // Screen output.
	Interval time.Duration       // Redraw interval, FRAME_INTERVAL if zero.
	Env      func(string) string // Environment lookup, os.Getenv if nil.
}

var _ Display = (*Terminal)(nil)

// NewTerminal returns a terminal display on stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

func (term *Terminal) getenv(name string) string {
	if term.Env == nil {
		return os.Getenv(name)
	}
	return term.Env(name)
}

// CheckColor verifies the terminal can show 24-bit colour.
func (term *Terminal) CheckColor() (err error) {
	switch term.getenv("COLORTERM") {
	case "truecolor", "24bit":
		return
	}

	name := term.getenv("TERM")
	for _, tag := range []string{"256color", "direct", "truecolor"} {
		if strings.Contains(name, tag) {
			return
		}
	}

	err = ErrColorUnsupported
	return
}

// makeRaw puts the input in non-canonical mode and returns a restore function.
// Signal generation stays enabled so an interrupt still reaches the process.
func makeRaw(in *os.File) (restore func(), err error) {
	fd := int(in.Fd())

	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrNotTerminal, err)
		return
	}

	saved := *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	// Reads return after 100ms without input.
	state.Cc[unix.VMIN] = 0
	state.Cc[unix.VTIME] = 1

	err = unix.IoctlSetTermios(fd, ioctlSetTermios, &state)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrNotTerminal, err)
		return
	}

	restore = func() {
		_ = unix.IoctlSetTermios(fd, ioctlSetTermios, &saved)
	}

	return
}

// ttyReader reads a raw mode terminal. A read that times out returns no
// bytes and no error, where os.File would report io.EOF.
type ttyReader int

func (fd ttyReader) Read(buf []byte) (n int, err error) {
	n, err = unix.Read(int(fd), buf)
	if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
		err = nil
	}
	n = max(n, 0)
	return
}

// DrawFrame writes one bordered frame of the framebuffer to w.
// Each cell is two columns wide to keep the screen square.
func DrawFrame(w io.Writer, framebuffer []byte) (err error) {
	err = checkFramebuffer(framebuffer)
	if err != nil {
		return
	}

	var buf bytes.Buffer

	border := "+" + strings.Repeat("-", SCREEN_WIDTH*2) + "+\r\n"

	buf.WriteString(ansiHome)
	buf.WriteString(border)
	for row := range SCREEN_HEIGHT {
		buf.WriteByte('|')
		for _, cell := range framebuffer[row*SCREEN_WIDTH : (row+1)*SCREEN_WIDTH] {
			c := CellColor(cell)
			fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm  ", c.R, c.G, c.B)
		}
		buf.WriteString(ansiReset)
		buf.WriteString("|\r\n")
	}
	buf.WriteString(border)

	_, err = w.Write(buf.Bytes())
	return
}

// readKeys copies key presses from in to the keypress cell until ctx is done.
func readKeys(ctx context.Context, in io.Reader, keypress *byte) (err error) {
	input := make([]byte, 16)
	for ctx.Err() == nil {
		var n int
		n, err = in.Read(input)
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		buf := input[:n]
		for len(buf) > 0 {
			key, size, ok := DecodeKey(buf)
			if ok {
				*keypress = key
			}
			buf = buf[size:]
		}
	}

	return
}

// Render draws the framebuffer every interval until ctx is done.
func (term *Terminal) Render(ctx context.Context, keypress *byte, framebuffer []byte) (err error) {
	err = term.CheckColor()
	if err != nil {
		return
	}

	err = checkFramebuffer(framebuffer)
	if err != nil {
		return
	}

	// Without a terminal on the input there is no keyboard.
	keyboard := false
	if term.In != nil {
		if restore, rerr := makeRaw(term.In); rerr == nil {
			defer restore()
			keyboard = true
		}
	}

	interval := term.Interval
	if interval <= 0 {
		interval = FRAME_INTERVAL
	}

	fmt.Fprint(term.Out, ansiHideCursor+ansiClear)
	defer fmt.Fprint(term.Out, ansiReset+ansiShowCursor)

	g, gctx := errgroup.WithContext(ctx)

	if keyboard {
		g.Go(func() error {
			return readKeys(gctx, ttyReader(term.In.Fd()), keypress)
		})
	}

	g.Go(func() (err error) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			err = DrawFrame(term.Out, framebuffer)
			if err != nil {
				return
			}

			select {
			case <-gctx.Done():
				// Final frame after the interpreter stops.
				err = DrawFrame(term.Out, framebuffer)
				return
			case <-ticker.C:
			}
		}
	})

	err = g.Wait()
	return
}

// Inspect shows the scroll in a pager until 'q' is pressed or ctx is done.
func (term *Terminal) Inspect(ctx context.Context, sc *Scroll) (err error) {
	if term.In == nil {
		err = ErrNotTerminal
		return
	}

	restore, err := makeRaw(term.In)
	if err != nil {
		return
	}
	defer restore()

	fd := int(term.In.Fd())
	tty := ttyReader(fd)
	if ws, werr := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); werr == nil && ws.Row > 1 {
		sc.Resize(int(ws.Row))
	} else if sc.Height < 2 {
		sc.Resize(24)
	}

	fmt.Fprint(term.Out, ansiAltScreen+ansiHideCursor)
	defer fmt.Fprint(term.Out, ansiShowCursor+ansiMainScreen)

	input := make([]byte, 16)
	for {
		err = sc.RenderTo(term.Out)
		if err != nil {
			return
		}

		var n int
		for n == 0 {
			if ctx.Err() != nil {
				err = ctx.Err()
				return
			}
			n, err = tty.Read(input)
			if err != nil {
				return
			}
		}

		switch seq := string(input[:n]); seq {
		case "q", "Q":
			return
		case "\x1b[A", "\x1bOA", "k":
			sc.ScrollUp()
		case "\x1b[B", "\x1bOB", "j":
			sc.ScrollDown()
		case "\x1b[H", "g":
			sc.Home()
		case "\x1b[F", "G":
			sc.End()
		}
	}
}
