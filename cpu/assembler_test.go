package cpu

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func assemble(source ...string) (*Program, error) {
	asm := &Assembler{}
	return asm.Assemble(strings.Join(source, "\n"))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble("")
	assert.NoError(err)
	assert.Equal(0, len(prog.Code))
	assert.Equal(uint16(CODE_ORIGIN), prog.Origin)

	prog, err = assemble(
		"; a comment",
		"",
		"   lda #$01  ; load",
		"   sta $0200",
		"   brk",
	)
	assert.NoError(err)
	assert.Equal([]byte{0xA9, 0x01, 0x8D, 0x00, 0x02, 0x00}, prog.Code)
}

func TestAssemblerModes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		code   []byte
	}){
		{"lda #$10", []byte{0xA9, 0x10}},
		{"lda #16", []byte{0xA9, 0x10}},
		{"lda $10", []byte{0xA5, 0x10}},
		{"lda 255", []byte{0xA5, 0xFF}},
		{"lda 256", []byte{0xAD, 0x00, 0x01}},
		{"lda $10,x", []byte{0xB5, 0x10}},
		{"lda $10 , X", []byte{0xB5, 0x10}},
		{"lda $1234", []byte{0xAD, 0x34, 0x12}},
		{"lda $0010", []byte{0xAD, 0x10, 0x00}},
		{"lda $1234,X", []byte{0xBD, 0x34, 0x12}},
		{"lda $1234,y", []byte{0xB9, 0x34, 0x12}},
		{"lda ($10,x)", []byte{0xA1, 0x10}},
		{"lda ( $10 , X )", []byte{0xA1, 0x10}},
		{"lda ($10),y", []byte{0xB1, 0x10}},
		{"ldx $10,y", []byte{0xB6, 0x10}},
		{"stx $10,Y", []byte{0x96, 0x10}},
		{"asl a", []byte{0x0A}},
		{"ASL A", []byte{0x0A}},
		{"Lda #$01", []byte{0xA9, 0x01}},
		{"inx", []byte{0xE8}},
		{"jmp $1234", []byte{0x4C, 0x34, 0x12}},
		{"jmp $10", []byte{0x4C, 0x10, 0x00}},
		{"jmp ($1234)", []byte{0x6C, 0x34, 0x12}},
		{"jmp ( $10 )", []byte{0x6C, 0x10, 0x00}},
		{"dcb 1, $02, $0304", []byte{0x01, 0x02, 0x04, 0x03}},
		{"dcb $ff,300", []byte{0xFF, 0x2C, 0x01}},
		{"lda #$(1+2)", []byte{0xA9, 0x03}},
		{"lda $(0x100 | 0x34)", []byte{0xAD, 0x34, 0x01}},
		{"lda ($(2)),y", []byte{0xB1, 0x02}},
		{"sta ($(1+1),x)", []byte{0x81, 0x02}},
		{"lda $((1+2)*2),x", []byte{0xB5, 0x06}},
		{"jmp ($(0x1234))", []byte{0x6C, 0x34, 0x12}},
		{"dcb $(1), $(2)", []byte{0x01, 0x02}},
	}

	for _, entry := range table {
		prog, err := assemble(entry.source)
		if !assert.NoError(err, entry.source) {
			continue
		}
		assert.Equal(entry.code, prog.Code, entry.source)
	}
}

func TestAssemblerDefine(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		"define ZERO $00",
		"define screen $0200",
		"define acc a",
		"define N 4",
		"lda #ZERO",
		"sta screen,x",
		"asl acc",
		"lda #$(N*2)",
	)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]byte{0xA9, 0x00, 0x9D, 0x00, 0x02, 0x0A, 0xA9, 0x08}, prog.Code)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("COLOR", "$05")
	asm.Predefine("WIDTH", "32")

	prog, err := asm.Assemble("lda #COLOR\nldx #$(WIDTH-1)")
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]byte{0xA9, 0x05, 0xA2, 0x1F}, prog.Code)
	assert.Equal("$05", asm.Symbols().Lookup("COLOR"))

	// Predefines survive a second parse.
	prog, err = asm.Assemble("lda #COLOR")
	assert.NoError(err)
	assert.Equal([]byte{0xA9, 0x05}, prog.Code)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		"start: jmp end",
		"  nop",
		"end: jmp start",
	)
	if assert.NoError(err) {
		assert.Equal([]byte{0x4C, 0x04, 0x06, 0xEA, 0x4C, 0x00, 0x06}, prog.Code)
		addr, ok := prog.Label("end")
		assert.True(ok)
		assert.Equal(uint16(0x604), addr)
	}

	// Forward and backward references encode the same address.
	prog, err = assemble(
		"  jsr sub",
		"sub: rts",
		"  jsr sub",
	)
	if assert.NoError(err) {
		assert.Equal([]byte{0x20, 0x03, 0x06, 0x60, 0x20, 0x03, 0x06}, prog.Code)
	}

	prog, err = assemble(
		"table: dcb lo, $00",
		"lo: lda table",
		"  lda table,y",
		"  jmp (table)",
	)
	if assert.NoError(err) {
		assert.Equal([]byte{
			0x03, 0x06, 0x00,
			0xAD, 0x00, 0x06,
			0xB9, 0x00, 0x06,
			0x6C, 0x00, 0x06,
		}, prog.Code)
	}

	prog, err = assemble(
		"label_only:",
		"  :",
	)
	assert.Error(err)
	assert.Nil(prog)
}

func TestAssemblerBranch(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		"loop: dex",
		"  bne loop",
	)
	if assert.NoError(err) {
		assert.Equal([]byte{0xCA, 0xD0, 0xFD}, prog.Code)
	}

	prog, err = assemble(
		"  beq skip",
		"  inx",
		"skip: brk",
	)
	if assert.NoError(err) {
		assert.Equal([]byte{0xF0, 0x01, 0xE8, 0x00}, prog.Code)
	}
}

func nops(count int) (lines []string) {
	for range count {
		lines = append(lines, "nop")
	}
	return
}

func TestAssemblerBranchTooFar(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source []string
		ok     bool
		lineno int
	}){
		{"forward_127", append(append([]string{"bne far"}, nops(127)...), "far: brk"), true, 0},
		{"forward_128", append(append([]string{"bne far"}, nops(128)...), "far: brk"), false, 1},
		{"backward_128", append(append([]string{"far: nop"}, nops(125)...), "bne far"), true, 0},
		{"backward_129", append(append([]string{"far: nop"}, nops(126)...), "bne far"), false, 128},
	}

	for _, entry := range table {
		prog, err := assemble(entry.source...)
		if entry.ok {
			assert.NoError(err, entry.name)
			continue
		}

		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, ErrLabelTooFar("far"), entry.name)
		var syn *ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
			assert.Equal("bne far", syn.Line, entry.name)
		}
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source []string
		err    error
		lineno int
	}){
		{[]string{"foo"}, ErrMnemonicUnknown("foo"), 1},
		{[]string{"nop", "inx 1"}, ErrOperandExtra("inx"), 2},
		{[]string{"lda"}, ErrOperandMissing, 1},
		{[]string{"bne"}, ErrOperandMissing, 1},
		{[]string{"bne 1"}, ErrLabelInvalid("1"), 1},
		{[]string{"jsr $1234"}, ErrLabelInvalid("$1234"), 1},
		{[]string{"lda ($10"}, ErrSyntaxInvalid, 1},
		{[]string{"lda $10,z"}, ErrSyntaxInvalid, 1},
		{[]string{"lda $12345"}, ErrNumberTooLarge("$12345"), 1},
		{[]string{"lda #$zz"}, ErrNumberInvalid("$zz"), 1},
		{[]string{"lda #$1234"}, ErrModeUnsupported("lda"), 1},
		{[]string{"sta #$10"}, ErrModeUnsupported("sta"), 1},
		{[]string{"ldx $10,x"}, ErrModeUnsupported("ldx"), 1},
		{[]string{"lda a"}, ErrModeUnsupported("lda"), 1},
		{[]string{"define 1x 3"}, ErrDefineSyntax, 1},
		{[]string{"define x"}, ErrDefineSyntax, 1},
		{[]string{"1bad: nop"}, ErrLabelInvalid("1bad"), 1},
		{[]string{"a: nop", "a: nop"}, ErrLabelDuplicate, 2},
		{[]string{"nop", "jmp nowhere"}, ErrLabelMissing("nowhere"), 2},
		{[]string{"dcb 1, nowhere"}, ErrLabelMissing("nowhere"), 1},
		{[]string{"lda #$(1-2)"}, ErrParseExpression("1-2"), 1},
		{[]string{`lda #$("x")`}, ErrParseExpression(`"x"`), 1},
		{[]string{"lda #$(undefined)"}, ErrParseExpression("undefined"), 1},
		{[]string{"nop", "lda #$((1+2)"}, ErrParseExpression("(1+2)"), 2},
	}

	for _, entry := range table {
		name := strings.Join(entry.source, "|")
		prog, err := assemble(entry.source...)
		assert.Nil(prog, name)
		assert.ErrorIs(err, entry.err, name)

		var syn *ErrSyntax
		if assert.True(errors.As(err, &syn), name) {
			assert.Equal(entry.lineno, syn.LineNo, name)
		}
	}
}

func TestAssemblerReadError(t *testing.T) {
	assert := assert.New(t)

	failed := errors.New("disk on fire")
	input := io.MultiReader(strings.NewReader("nop\n"), iotest.ErrReader(failed))

	asm := &Assembler{}
	prog, err := asm.Parse(input)
	assert.Nil(prog)
	assert.ErrorIs(err, failed)

	var syn *ErrSyntax
	assert.False(errors.As(err, &syn))
}

func TestAssemblerListing(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		"lda #$01",
		"; comment",
		"define x 1",
		"loop: sta $0200 ; store",
	)
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]Line{
		{LineNo: 1, Offset: 0, Size: 2, Text: "lda #$01"},
		{LineNo: 4, Offset: 2, Size: 3, Text: "sta $0200"},
	}, prog.Lines)
}

func TestErrSyntax(t *testing.T) {
	assert := assert.New(t)

	err := &ErrSyntax{LineNo: 3, Line: "foo", Err: ErrMnemonicUnknown("foo")}
	assert.Contains(err.Error(), "3")
	assert.Contains(err.Error(), "foo")
	assert.ErrorIs(err, ErrMnemonicUnknown("foo"))
}
