//go:build sdl

package io

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL_SCALE is the size in pixels of one framebuffer cell.
const SDL_SCALE = 16

// Window draws the framebuffer in an SDL window.
type Window struct {
	Title    string        // Window title.
	Interval time.Duration // Redraw interval, FRAME_INTERVAL if zero.
}

var _ Display = (*Window)(nil)

var sdlKeyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_UP:    KEY_UP,
	sdl.SCANCODE_LEFT:  KEY_LEFT,
	sdl.SCANCODE_DOWN:  KEY_DOWN,
	sdl.SCANCODE_RIGHT: KEY_RIGHT,
}

func init() {
	mainLoop = sdl.Main
	displays["sdl"] = func(opts Options) Display {
		return &Window{Title: "int6502", Interval: opts.Interval}
	}
}

// Render draws the framebuffer every interval until ctx is done or the
// window is closed. SDL calls are queued to the main thread with sdl.Do,
// so the process must run under RunMain.
func (win *Window) Render(ctx context.Context, keypress *byte, framebuffer []byte) (err error) {
	err = checkFramebuffer(framebuffer)
	if err != nil {
		return
	}

	var window *sdl.Window
	var renderer *sdl.Renderer
	sdl.Do(func() {
		err = sdl.Init(sdl.INIT_VIDEO)
		if err != nil {
			return
		}
		window, renderer, err = sdl.CreateWindowAndRenderer(SCREEN_WIDTH*SDL_SCALE, SCREEN_HEIGHT*SDL_SCALE, sdl.WINDOW_SHOWN)
		if err != nil {
			sdl.Quit()
			return
		}
		window.SetTitle(win.Title)
	})
	if err != nil {
		return
	}
	defer sdl.Do(func() {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
	})

	interval := win.Interval
	if interval <= 0 {
		interval = FRAME_INTERVAL
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		var quit bool
		sdl.Do(func() {
			quit = win.poll(keypress)
			if !quit {
				err = win.draw(renderer, framebuffer)
			}
		})
		if quit {
			err = ErrInterrupted
			return
		}
		if err != nil {
			return
		}

		select {
		case <-ctx.Done():
			sdl.Do(func() {
				err = win.draw(renderer, framebuffer)
			})
			return
		case <-ticker.C:
		}
	}
}

// poll drains pending events, and reports whether the window was closed.
func (win *Window) poll(keypress *byte) (quit bool) {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				continue
			}
			if key, ok := sdlKeyMap[ev.Keysym.Scancode]; ok {
				*keypress = key
			} else if sym := ev.Keysym.Sym; sym >= 0x20 && sym <= 0x7f {
				*keypress = byte(sym)
			}
		}
	}
	return
}

func (win *Window) draw(renderer *sdl.Renderer, framebuffer []byte) (err error) {
	for n, cell := range framebuffer {
		c := CellColor(cell)
		err = renderer.SetDrawColor(c.R, c.G, c.B, 0xff)
		if err != nil {
			return
		}

		rect := sdl.Rect{
			X: int32(n%SCREEN_WIDTH) * SDL_SCALE,
			Y: int32(n/SCREEN_WIDTH) * SDL_SCALE,
			W: SDL_SCALE,
			H: SDL_SCALE,
		}
		err = renderer.FillRect(&rect)
		if err != nil {
			return
		}
	}

	renderer.Present()
	return
}
