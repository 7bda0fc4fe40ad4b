package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func bytesReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestScroll(t *testing.T) {
	assert := assert.New(t)

	sc := &Scroll{Height: 3}
	for _, line := range []string{"l0", "l1", "l2", "l3", "l4"} {
		sc.AppendLine(line)
	}

	assert.Equal(5, len(sc.Lines()))
	assert.Equal([]string{"l0", "l1"}, sc.Visible())

	sc.ScrollUp()
	assert.Equal(0, sc.Top())

	for range 10 {
		sc.ScrollDown()
	}
	assert.Equal(3, sc.Top())
	assert.Equal([]string{"l3", "l4"}, sc.Visible())

	sc.ScrollUp()
	assert.Equal([]string{"l2", "l3"}, sc.Visible())

	sc.Home()
	assert.Equal(0, sc.Top())

	sc.End()
	assert.Equal(3, sc.Top())

	sc.Resize(10)
	assert.Equal(0, sc.Top())
	assert.Equal(5, len(sc.Visible()))

	sc.ScrollDown()
	assert.Equal(0, sc.Top())
}

func TestScroll_Empty(t *testing.T) {
	assert := assert.New(t)

	sc := &Scroll{}
	sc.ScrollDown()
	sc.ScrollUp()
	sc.End()
	assert.Equal(0, sc.Top())
	assert.Empty(sc.Visible())
}

func TestScroll_RenderTo(t *testing.T) {
	assert := assert.New(t)

	sc := &Scroll{Height: 3}
	sc.AppendLine("first")
	sc.AppendLine("second")
	sc.AppendLine("third")
	sc.ScrollDown()

	var out bytes.Buffer
	assert.NoError(sc.RenderTo(&out))
	assert.Equal("\x1b[H\x1b[2Jsecond\r\nthird\r\n", out.String())
}
