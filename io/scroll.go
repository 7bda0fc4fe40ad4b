package io

import (
	"fmt"
	"io"
)

// Scroll is a scrollable view over a list of text lines.
//
// The bottom row of the view is reserved, so Height rows show
// Height-1 lines.
type Scroll struct {
	Height int // Rows in the view, including the reserved bottom row.

	lines []string
	top   int
}

// AppendLine adds a line to the end of the list.
func (sc *Scroll) AppendLine(line string) {
	sc.lines = append(sc.lines, line)
}

// Lines returns all of the lines.
func (sc *Scroll) Lines() []string {
	return sc.lines
}

// Top returns the index of the first visible line.
func (sc *Scroll) Top() int {
	return sc.top
}

func (sc *Scroll) rows() int {
	return max(sc.Height-1, 0)
}

func (sc *Scroll) bottom() int {
	return max(len(sc.lines)-sc.rows(), 0)
}

// Visible returns the lines currently in view.
func (sc *Scroll) Visible() []string {
	end := min(sc.top+sc.rows(), len(sc.lines))
	return sc.lines[sc.top:end]
}

// ScrollUp moves the view up by one line, stopping at the first line.
func (sc *Scroll) ScrollUp() {
	if sc.top > 0 {
		sc.top--
	}
}

// ScrollDown moves the view down by one line, stopping when the last
// line is in view.
func (sc *Scroll) ScrollDown() {
	if sc.top < sc.bottom() {
		sc.top++
	}
}

// Home moves the view to the first line.
func (sc *Scroll) Home() {
	sc.top = 0
}

// End moves the view so the last line is in view.
func (sc *Scroll) End() {
	sc.top = sc.bottom()
}

// Resize changes the view height, keeping the top line in range.
func (sc *Scroll) Resize(height int) {
	sc.Height = height
	sc.top = min(sc.top, sc.bottom())
}

// RenderTo clears the screen and writes the visible lines to w.
func (sc *Scroll) RenderTo(w io.Writer) (err error) {
	_, err = fmt.Fprint(w, "\x1b[H\x1b[2J")
	if err != nil {
		return
	}

	for _, line := range sc.Visible() {
		_, err = fmt.Fprintf(w, "%s\r\n", line)
		if err != nil {
			return
		}
	}

	return
}
