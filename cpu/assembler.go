package cpu

import (
	"bufio"
	"errors"
	"io"
	"log"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Assembler is a two pass assembler for the 6502 instruction set.
//
// The first pass encodes each line, leaving placeholders for label
// references. The second pass patches the placeholders once every
// label is known.
type Assembler struct {
	Verbose bool           // If set, verbosely logs the assembler actions.
	Label   map[string]int // Map of labels to code offsets.

	predefine map[string]string // Predefines
	ctx       Context           // Encoder state.
	lines     []Line            // Listing.
	source    []string          // Source text by line number.
}

// Predefine defines a symbol before any source is parsed.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Symbols returns the symbol table of the most recent parse.
func (asm *Assembler) Symbols() *SymbolTable {
	return asm.ctx.Symbols
}

// reset prepares the assembler for a new source.
func (asm *Assembler) reset() {
	asm.Label = make(map[string]int, 16)
	asm.ctx = Context{Symbols: &SymbolTable{}}
	asm.lines = nil
	asm.source = nil

	for name, value := range asm.predefine {
		asm.ctx.Symbols.Define(name, value)
	}
}

// parseLine encodes a single line of source.
func (asm *Assembler) parseLine(text string, lineno int) (err error) {
	asm.ctx.LineNo = lineno

	line, _, _ := strings.Cut(text, ";")

	line, err = expandExpr(asm.ctx.Symbols, line)
	if err != nil {
		return
	}

	if label, rest, ok := strings.Cut(line, ":"); ok {
		label = strings.TrimSpace(label)
		if !isLabel(label) {
			err = ErrLabelInvalid(label)
			return
		}
		if _, dup := asm.Label[label]; dup {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.ctx.Code)
		if asm.Verbose {
			log.Printf("%v: label %v = %v", lineno, label, len(asm.ctx.Code))
		}
		line = rest
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	word, operand := line, ""
	if n := strings.IndexFunc(line, unicode.IsSpace); n >= 0 {
		word, operand = line[:n], strings.TrimSpace(line[n:])
	}

	mnemonic := strings.ToLower(word)
	encode, ok := encoderMap[mnemonic]
	if !ok {
		err = ErrMnemonicUnknown(word)
		return
	}

	offset := len(asm.ctx.Code)
	err = encode(&asm.ctx, mnemonic, operand)
	if err != nil {
		return
	}

	if size := len(asm.ctx.Code) - offset; size > 0 {
		asm.lines = append(asm.lines, Line{LineNo: lineno, Offset: offset, Size: size, Text: line})
	}

	return
}

// Parse assembles an input stream into a linked Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int
	var failed bool // Input could not be read.

	defer func() {
		if err == nil || failed {
			return
		}
		var syn *ErrSyntax
		if errors.As(err, &syn) {
			if len(syn.Line) == 0 && syn.LineNo > 0 && syn.LineNo <= len(asm.source) {
				syn.Line = strings.TrimSpace(asm.source[syn.LineNo-1])
			}
			return
		}
		err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
	}()

	asm.reset()

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1
		asm.source = append(asm.source, text)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		err = asm.parseLine(text, lineno)
		if err != nil {
			text = strings.TrimSpace(text)
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		failed = true
		return
	}

	code := asm.ctx.Code
	if len(code) > MEMORY_SIZE-CODE_ORIGIN {
		err = ErrProgramTooLarge
		return
	}

	// Final linking of labels.
	err = Link(code, asm.Label, asm.ctx.References, CODE_ORIGIN)
	if err != nil {
		return
	}

	prog = &Program{
		Origin: CODE_ORIGIN,
		Code:   slices.Clone(code),
		Lines:  slices.Clone(asm.lines),
		Labels: maps.Clone(asm.Label),
	}

	return
}

// Assemble is a convenience wrapper around Parse for in-memory source.
func (asm *Assembler) Assemble(source string) (*Program, error) {
	return asm.Parse(strings.NewReader(source))
}
