package cpu

import (
	"regexp"
	"strings"
)

// Context is the state threaded through the encoders while a source
// file is assembled.
type Context struct {
	LineNo     int          // Current source line.
	Symbols    *SymbolTable // Defines.
	Code       []byte       // Machine code emitted so far.
	References []Reference  // Pending label references.
}

// emit appends bytes to the code.
func (ctx *Context) emit(data ...byte) {
	ctx.Code = append(ctx.Code, data...)
}

// refer emits a placeholder for label and records the pending reference.
func (ctx *Context) refer(mode RefMode, label string) {
	ctx.References = append(ctx.References, Reference{
		Pos:    len(ctx.Code),
		Mode:   mode,
		LineNo: ctx.LineNo,
		Label:  label,
	})
	for range mode.Size() {
		ctx.emit(0)
	}
}

// encoder translates one instruction or directive into code.
type encoder func(ctx *Context, mnemonic string, operand string) error

// encoderMap maps each mnemonic to its encoder.
var encoderMap = map[string]encoder{
	"jmp":    encodeJump,
	"jsr":    encodeCall,
	"dcb":    encodeBytes,
	"define": encodeDefine,
}

func init() {
	for inst := range opcodeMap {
		if _, ok := encoderMap[inst.Mnemonic]; ok {
			continue
		}
		switch inst.Mode {
		case MODE_IMPLIED:
			encoderMap[inst.Mnemonic] = encodeImplied
		case MODE_RELATIVE:
			encoderMap[inst.Mnemonic] = encodeBranch
		default:
			encoderMap[inst.Mnemonic] = encodeOperand
		}
	}
}

var (
	reImmediate = regexp.MustCompile(`^#([$\w]+)$`)
	reDirect    = regexp.MustCompile(`^([$\w]+)(?:\s*,\s*([xyXY])\s*)?$`)
	reIndirectX = regexp.MustCompile(`^\(\s*([$\w]+)\s*,\s*[xX]\s*\)$`)
	reIndirectY = regexp.MustCompile(`^\(\s*([$\w]+)\s*\)\s*,\s*[yY]$`)
	reDefine    = regexp.MustCompile(`^([a-zA-Z_]\w*)\s+([$\w]+)$`)
)

// Operand is a classified operand.
type Operand struct {
	Short Mode   // Mode of the one byte form.
	Long  Mode   // Mode of the two byte form, if HasLong.
	Value string // Literal or label text, before substitution.

	HasLong bool
}

// ClassifyOperand determines the addressing mode syntax of an operand.
func ClassifyOperand(text string) (opnd Operand, err error) {
	if match := reImmediate.FindStringSubmatch(text); match != nil {
		opnd = Operand{Short: MODE_IMMEDIATE, Value: match[1]}
		return
	}

	if match := reDirect.FindStringSubmatch(text); match != nil {
		opnd = Operand{Short: MODE_ZERO_PAGE, Long: MODE_ABSOLUTE, Value: match[1], HasLong: true}
		switch strings.ToLower(match[2]) {
		case "x":
			opnd.Short, opnd.Long = MODE_ZERO_PAGE_X, MODE_ABSOLUTE_X
		case "y":
			opnd.Short, opnd.Long = MODE_ZERO_PAGE_Y, MODE_ABSOLUTE_Y
		}
		return
	}

	if match := reIndirectX.FindStringSubmatch(text); match != nil {
		opnd = Operand{Short: MODE_INDIRECT_X, Value: match[1]}
		return
	}

	if match := reIndirectY.FindStringSubmatch(text); match != nil {
		opnd = Operand{Short: MODE_INDIRECT_Y, Value: match[1]}
		return
	}

	err = ErrSyntaxInvalid
	return
}

// encodeOperand encodes the general addressing modes of a mnemonic.
func encodeOperand(ctx *Context, mnemonic string, operand string) (err error) {
	if len(operand) == 0 {
		err = ErrOperandMissing
		return
	}

	if acc := ctx.Symbols.Lookup(operand); acc == "a" || acc == "A" {
		op, ok := Opcode(mnemonic, MODE_ACCUMULATOR)
		if !ok {
			err = ErrModeUnsupported(mnemonic)
			return
		}
		ctx.emit(op)
		return
	}

	opnd, err := ClassifyOperand(operand)
	if err != nil {
		return
	}

	value := ctx.Symbols.Lookup(opnd.Value)

	// Labels only ever resolve to the two byte form.
	if isLabel(value) && opnd.HasLong {
		if op, ok := Opcode(mnemonic, opnd.Long); ok {
			ctx.emit(op)
			ctx.refer(REF_ABSOLUTE, value)
			return
		}
	}

	num, size, err := parseNumber(value)
	if err != nil {
		return
	}

	mode := opnd.Short
	if size == 2 {
		if !opnd.HasLong {
			err = ErrModeUnsupported(mnemonic)
			return
		}
		mode = opnd.Long
	}

	op, ok := Opcode(mnemonic, mode)
	if !ok {
		err = ErrModeUnsupported(mnemonic)
		return
	}

	ctx.emit(op, byte(num))
	if mode.Size() == 3 {
		ctx.emit(byte(num >> 8))
	}

	return
}

// encodeImplied encodes an instruction without operands.
func encodeImplied(ctx *Context, mnemonic string, operand string) (err error) {
	if len(operand) != 0 {
		err = ErrOperandExtra(mnemonic)
		return
	}

	op, ok := Opcode(mnemonic, MODE_IMPLIED)
	if !ok {
		err = ErrModeUnsupported(mnemonic)
		return
	}

	ctx.emit(op)
	return
}

// encodeLabel encodes an instruction whose operand is always a label.
func encodeLabel(ctx *Context, mnemonic string, operand string, mode Mode, ref RefMode) (err error) {
	if len(operand) == 0 {
		err = ErrOperandMissing
		return
	}

	label := ctx.Symbols.Lookup(operand)
	if !isLabel(label) {
		err = ErrLabelInvalid(label)
		return
	}

	op, ok := Opcode(mnemonic, mode)
	if !ok {
		err = ErrModeUnsupported(mnemonic)
		return
	}

	ctx.emit(op)
	ctx.refer(ref, label)
	return
}

// encodeBranch encodes a conditional branch to a label.
func encodeBranch(ctx *Context, mnemonic string, operand string) error {
	return encodeLabel(ctx, mnemonic, operand, MODE_RELATIVE, REF_RELATIVE)
}

// encodeCall encodes a subroutine call to a label.
func encodeCall(ctx *Context, mnemonic string, operand string) error {
	return encodeLabel(ctx, mnemonic, operand, MODE_ABSOLUTE, REF_ABSOLUTE)
}

// encodeJump encodes jmp to a label, an address, or (address).
func encodeJump(ctx *Context, mnemonic string, operand string) (err error) {
	if len(operand) == 0 {
		err = ErrOperandMissing
		return
	}

	target := ctx.Symbols.Lookup(operand)
	mode := MODE_ABSOLUTE

	if strings.HasPrefix(target, "(") && strings.HasSuffix(target, ")") {
		mode = MODE_INDIRECT
		target = ctx.Symbols.Lookup(strings.TrimSpace(target[1 : len(target)-1]))
	}

	op, ok := Opcode(mnemonic, mode)
	if !ok {
		err = ErrModeUnsupported(mnemonic)
		return
	}

	if isLabel(target) {
		ctx.emit(op)
		ctx.refer(REF_ABSOLUTE, target)
		return
	}

	num, _, err := parseNumber(target)
	if err != nil {
		return
	}

	ctx.emit(op, byte(num), byte(num>>8))
	return
}

// encodeBytes encodes a comma separated table of literals and labels.
func encodeBytes(ctx *Context, mnemonic string, operand string) (err error) {
	if len(operand) == 0 {
		err = ErrOperandMissing
		return
	}

	for _, item := range strings.Split(operand, ",") {
		value := ctx.Symbols.Lookup(strings.TrimSpace(item))

		if isLabel(value) {
			ctx.refer(REF_ABSOLUTE, value)
			continue
		}

		var num uint16
		var size int
		num, size, err = parseNumber(value)
		if err != nil {
			return
		}

		ctx.emit(byte(num))
		if size == 2 {
			ctx.emit(byte(num >> 8))
		}
	}

	return
}

// encodeDefine installs a define; it emits no code.
func encodeDefine(ctx *Context, mnemonic string, operand string) (err error) {
	if len(operand) == 0 {
		err = ErrOperandMissing
		return
	}

	match := reDefine.FindStringSubmatch(operand)
	if match == nil {
		err = ErrDefineSyntax
		return
	}

	ctx.Symbols.Define(match[1], match[2])
	return
}
