package io

import (
	"context"
	"maps"
	"slices"
	"time"
)

const (
	FRAME_INTERVAL = 100 * time.Millisecond // Default redraw interval.
	SCREEN_WIDTH   = 32                     // Framebuffer cells per row.
	SCREEN_HEIGHT  = 32                     // Framebuffer rows.
)

// Display draws the framebuffer and reports key presses.
//
// Render runs until ctx is done, draws one final frame, and returns.
// The framebuffer and keypress cell are shared with a running
// interpreter without synchronization; a stale frame or a lost key
// press is acceptable.
type Display interface {
	Render(ctx context.Context, keypress *byte, framebuffer []byte) error
}

// Null is a Display that draws nothing.
type Null struct{}

// Render waits for ctx to be done.
func (Null) Render(ctx context.Context, keypress *byte, framebuffer []byte) error {
	<-ctx.Done()
	return nil
}

// checkFramebuffer validates the framebuffer geometry.
func checkFramebuffer(framebuffer []byte) (err error) {
	if len(framebuffer) != SCREEN_WIDTH*SCREEN_HEIGHT {
		err = ErrFramebufferSize
	}
	return
}

// Options configures a display created by NewDisplay.
type Options struct {
	Verbose  bool          // Verbose logging.
	Addr     string        // Listen address for network displays.
	Interval time.Duration // Redraw interval.
}

var displays = map[string]func(opts Options) Display{
	"none": func(opts Options) Display { return Null{} },
	"terminal": func(opts Options) Display {
		term := NewTerminal()
		term.Interval = opts.Interval
		return term
	},
	"websocket": func(opts Options) Display {
		return &WebSocket{Verbose: opts.Verbose, Addr: opts.Addr, Interval: opts.Interval}
	},
}

// mainLoop owns the main OS thread while body runs. Displays that must
// draw from the main thread replace it.
var mainLoop = func(body func()) { body() }

// RunMain runs body, handing the main OS thread to the display layer.
// Call it from main.
func RunMain(body func()) {
	mainLoop(body)
}

// NewDisplay creates the named display.
func NewDisplay(name string, opts Options) (display Display, err error) {
	create, ok := displays[name]
	if !ok {
		err = ErrDisplayUnknown(name)
		return
	}

	display = create(opts)
	return
}

// Displays returns the names of the available displays, sorted.
func Displays() []string {
	return slices.Sorted(maps.Keys(displays))
}
