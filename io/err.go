package io

import (
	"errors"

	"github.com/int6502/int6502/translate"
)

var f = translate.From

var (
	// Display errors
	ErrColorUnsupported = errors.New(f("your terminal does not support colors"))
	ErrNotTerminal      = errors.New(f("not a terminal"))
	ErrInterrupted      = errors.New(f("interrupted"))
	ErrFramebufferSize  = errors.New(f("framebuffer size mismatch"))
)

type ErrDisplayUnknown string

func (err ErrDisplayUnknown) Error() string {
	return f("unknown display \"%v\"", string(err))
}
