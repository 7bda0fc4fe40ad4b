package io

import (
	"fmt"
)

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Hex returns the colour in #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette of the sixteen framebuffer colours.
var Palette = [16]Color{
	{0x00, 0x00, 0x00}, // black
	{0xFF, 0xFF, 0xFF}, // white
	{0xFF, 0x00, 0x00}, // red
	{0x60, 0xFF, 0xFA}, // cyan
	{0xC8, 0x00, 0xFF}, // magenta
	{0x00, 0xC0, 0x00}, // green
	{0x57, 0x70, 0xFF}, // blue
	{0xFF, 0xFF, 0x00}, // yellow
	{0xFF, 0x80, 0x00}, // orange
	{0xC0, 0x40, 0x40}, // brown
	{0xFF, 0xA0, 0xA0}, // light red
	{0x40, 0x40, 0x40}, // dark grey
	{0x80, 0x80, 0x80}, // grey
	{0x00, 0xFF, 0x00}, // light green
	{0x80, 0xC0, 0xFF}, // light blue
	{0xC0, 0xC0, 0xC0}, // light grey
}

// CellColor returns the colour of a framebuffer cell.
// Only the low nibble selects the colour.
func CellColor(cell byte) Color {
	return Palette[cell&0x0f]
}
