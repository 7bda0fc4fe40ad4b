package cpu

import (
	"fmt"
	"maps"
	"slices"
)

// Instruction is a mnemonic in a specific addressing mode.
type Instruction struct {
	Mnemonic string
	Mode     Mode
}

// String returns the instruction as mnemonic.mode
func (inst Instruction) String() string {
	return fmt.Sprintf("%v.%v", inst.Mnemonic, inst.Mode)
}

// Size of the encoded instruction.
func (inst Instruction) Size() int {
	return inst.Mode.Size()
}

// opcodeMap is the (mnemonic, mode) to opcode table.
var opcodeMap = map[Instruction]byte{
	{"lda", MODE_IMMEDIATE}: 0xA9, {"lda", MODE_ZERO_PAGE}: 0xA5, {"lda", MODE_ZERO_PAGE_X}: 0xB5,
	{"lda", MODE_ABSOLUTE}: 0xAD, {"lda", MODE_ABSOLUTE_X}: 0xBD, {"lda", MODE_ABSOLUTE_Y}: 0xB9,
	{"lda", MODE_INDIRECT_X}: 0xA1, {"lda", MODE_INDIRECT_Y}: 0xB1,

	{"sta", MODE_ZERO_PAGE}: 0x85, {"sta", MODE_ZERO_PAGE_X}: 0x95,
	{"sta", MODE_ABSOLUTE}: 0x8D, {"sta", MODE_ABSOLUTE_X}: 0x9D, {"sta", MODE_ABSOLUTE_Y}: 0x99,
	{"sta", MODE_INDIRECT_X}: 0x81, {"sta", MODE_INDIRECT_Y}: 0x91,

	{"cmp", MODE_IMMEDIATE}: 0xC9, {"cmp", MODE_ZERO_PAGE}: 0xC5, {"cmp", MODE_ZERO_PAGE_X}: 0xD5,
	{"cmp", MODE_ABSOLUTE}: 0xCD, {"cmp", MODE_ABSOLUTE_X}: 0xDD, {"cmp", MODE_ABSOLUTE_Y}: 0xD9,
	{"cmp", MODE_INDIRECT_X}: 0xC1, {"cmp", MODE_INDIRECT_Y}: 0xD1,

	{"and", MODE_IMMEDIATE}: 0x29, {"and", MODE_ZERO_PAGE}: 0x25, {"and", MODE_ZERO_PAGE_X}: 0x35,
	{"and", MODE_ABSOLUTE}: 0x2D, {"and", MODE_ABSOLUTE_X}: 0x3D, {"and", MODE_ABSOLUTE_Y}: 0x39,
	{"and", MODE_INDIRECT_X}: 0x21, {"and", MODE_INDIRECT_Y}: 0x31,

	{"ora", MODE_IMMEDIATE}: 0x09, {"ora", MODE_ZERO_PAGE}: 0x05, {"ora", MODE_ZERO_PAGE_X}: 0x15,
	{"ora", MODE_ABSOLUTE}: 0x0D, {"ora", MODE_ABSOLUTE_X}: 0x1D, {"ora", MODE_ABSOLUTE_Y}: 0x19,
	{"ora", MODE_INDIRECT_X}: 0x01, {"ora", MODE_INDIRECT_Y}: 0x11,

	{"eor", MODE_IMMEDIATE}: 0x49, {"eor", MODE_ZERO_PAGE}: 0x45, {"eor", MODE_ZERO_PAGE_X}: 0x55,
	{"eor", MODE_ABSOLUTE}: 0x4D, {"eor", MODE_ABSOLUTE_X}: 0x5D, {"eor", MODE_ABSOLUTE_Y}: 0x59,
	{"eor", MODE_INDIRECT_X}: 0x41, {"eor", MODE_INDIRECT_Y}: 0x51,

	{"adc", MODE_IMMEDIATE}: 0x69, {"adc", MODE_ZERO_PAGE}: 0x65, {"adc", MODE_ZERO_PAGE_X}: 0x75,
	{"adc", MODE_ABSOLUTE}: 0x6D, {"adc", MODE_ABSOLUTE_X}: 0x7D, {"adc", MODE_ABSOLUTE_Y}: 0x79,
	{"adc", MODE_INDIRECT_X}: 0x61, {"adc", MODE_INDIRECT_Y}: 0x71,

	{"sbc", MODE_IMMEDIATE}: 0xE9, {"sbc", MODE_ZERO_PAGE}: 0xE5, {"sbc", MODE_ZERO_PAGE_X}: 0xF5,
	{"sbc", MODE_ABSOLUTE}: 0xED, {"sbc", MODE_ABSOLUTE_X}: 0xFD, {"sbc", MODE_ABSOLUTE_Y}: 0xF9,
	{"sbc", MODE_INDIRECT_X}: 0xE1, {"sbc", MODE_INDIRECT_Y}: 0xF1,

	{"ldx", MODE_IMMEDIATE}: 0xA2, {"ldx", MODE_ZERO_PAGE}: 0xA6, {"ldx", MODE_ZERO_PAGE_Y}: 0xB6,
	{"ldx", MODE_ABSOLUTE}: 0xAE, {"ldx", MODE_ABSOLUTE_Y}: 0xBE,

	{"ldy", MODE_IMMEDIATE}: 0xA0, {"ldy", MODE_ZERO_PAGE}: 0xA4, {"ldy", MODE_ZERO_PAGE_X}: 0xB4,
	{"ldy", MODE_ABSOLUTE}: 0xAC, {"ldy", MODE_ABSOLUTE_X}: 0xBC,

	{"stx", MODE_ZERO_PAGE}: 0x86, {"stx", MODE_ZERO_PAGE_Y}: 0x96, {"stx", MODE_ABSOLUTE}: 0x8E,
	{"sty", MODE_ZERO_PAGE}: 0x84, {"sty", MODE_ZERO_PAGE_X}: 0x94, {"sty", MODE_ABSOLUTE}: 0x8C,

	{"cpx", MODE_IMMEDIATE}: 0xE0, {"cpx", MODE_ZERO_PAGE}: 0xE4, {"cpx", MODE_ABSOLUTE}: 0xEC,
	{"cpy", MODE_IMMEDIATE}: 0xC0, {"cpy", MODE_ZERO_PAGE}: 0xC4, {"cpy", MODE_ABSOLUTE}: 0xCC,

	{"bit", MODE_ZERO_PAGE}: 0x24, {"bit", MODE_ABSOLUTE}: 0x2C,

	{"asl", MODE_ACCUMULATOR}: 0x0A, {"asl", MODE_ZERO_PAGE}: 0x06, {"asl", MODE_ZERO_PAGE_X}: 0x16,
	{"asl", MODE_ABSOLUTE}: 0x0E, {"asl", MODE_ABSOLUTE_X}: 0x1E,

	{"lsr", MODE_ACCUMULATOR}: 0x4A, {"lsr", MODE_ZERO_PAGE}: 0x46, {"lsr", MODE_ZERO_PAGE_X}: 0x56,
	{"lsr", MODE_ABSOLUTE}: 0x4E, {"lsr", MODE_ABSOLUTE_X}: 0x5E,

	{"rol", MODE_ACCUMULATOR}: 0x2A, {"rol", MODE_ZERO_PAGE}: 0x26, {"rol", MODE_ZERO_PAGE_X}: 0x36,
	{"rol", MODE_ABSOLUTE}: 0x2E, {"rol", MODE_ABSOLUTE_X}: 0x3E,

	{"ror", MODE_ACCUMULATOR}: 0x6A, {"ror", MODE_ZERO_PAGE}: 0x66, {"ror", MODE_ZERO_PAGE_X}: 0x76,
	{"ror", MODE_ABSOLUTE}: 0x6E, {"ror", MODE_ABSOLUTE_X}: 0x7E,

	{"inc", MODE_ZERO_PAGE}: 0xE6, {"inc", MODE_ZERO_PAGE_X}: 0xF6,
	{"inc", MODE_ABSOLUTE}: 0xEE, {"inc", MODE_ABSOLUTE_X}: 0xFE,

	{"dec", MODE_ZERO_PAGE}: 0xC6, {"dec", MODE_ZERO_PAGE_X}: 0xD6,
	{"dec", MODE_ABSOLUTE}: 0xCE, {"dec", MODE_ABSOLUTE_X}: 0xDE,

	{"inx", MODE_IMPLIED}: 0xE8, {"iny", MODE_IMPLIED}: 0xC8,
	{"dex", MODE_IMPLIED}: 0xCA, {"dey", MODE_IMPLIED}: 0x88,

	{"clc", MODE_IMPLIED}: 0x18, {"cli", MODE_IMPLIED}: 0x58, {"cld", MODE_IMPLIED}: 0xD8,
	{"clv", MODE_IMPLIED}: 0xB8, {"sec", MODE_IMPLIED}: 0x38, {"sei", MODE_IMPLIED}: 0x78,
	{"sed", MODE_IMPLIED}: 0xF8,

	{"tax", MODE_IMPLIED}: 0xAA, {"txa", MODE_IMPLIED}: 0x8A, {"tay", MODE_IMPLIED}: 0xA8,
	{"tya", MODE_IMPLIED}: 0x98, {"tsx", MODE_IMPLIED}: 0xBA, {"txs", MODE_IMPLIED}: 0x9A,

	{"pha", MODE_IMPLIED}: 0x48, {"pla", MODE_IMPLIED}: 0x68,
	{"php", MODE_IMPLIED}: 0x08, {"plp", MODE_IMPLIED}: 0x28,

	{"nop", MODE_IMPLIED}: 0xEA,
	{"brk", MODE_IMPLIED}: 0x00,
	{"rti", MODE_IMPLIED}: 0x40,
	{"rts", MODE_IMPLIED}: 0x60,

	{"beq", MODE_RELATIVE}: 0xF0, {"bne", MODE_RELATIVE}: 0xD0,
	{"bmi", MODE_RELATIVE}: 0x30, {"bpl", MODE_RELATIVE}: 0x10,
	{"bcs", MODE_RELATIVE}: 0xB0, {"bcc", MODE_RELATIVE}: 0x90,
	{"bvs", MODE_RELATIVE}: 0x70, {"bvc", MODE_RELATIVE}: 0x50,

	{"jmp", MODE_ABSOLUTE}: 0x4C, {"jmp", MODE_INDIRECT}: 0x6C,
	{"jsr", MODE_ABSOLUTE}: 0x20,
}

// decodeTable and lengthTable are indexed by opcode byte.
var (
	decodeTable [256]Instruction
	lengthTable [256]uint8
)

func init() {
	for inst, op := range opcodeMap {
		if lengthTable[op] != 0 {
			panic(fmt.Sprintf("opcode 0x%02x assigned to %v and %v", op, decodeTable[op], inst))
		}
		decodeTable[op] = inst
		lengthTable[op] = uint8(inst.Size())
	}
}

// Opcode returns the opcode for a mnemonic in an addressing mode.
func Opcode(mnemonic string, mode Mode) (opcode byte, ok bool) {
	opcode, ok = opcodeMap[Instruction{Mnemonic: mnemonic, Mode: mode}]
	return
}

// Decode returns the instruction encoded by an opcode.
func Decode(opcode byte) (inst Instruction, ok bool) {
	if lengthTable[opcode] == 0 {
		return
	}

	return decodeTable[opcode], true
}

// Length returns the encoded length of an opcode, or 0 if it is unknown.
func Length(opcode byte) int {
	return int(lengthTable[opcode])
}

// Instructions returns all encodable instructions, sorted by opcode.
func Instructions() (insts []Instruction) {
	ops := slices.Sorted(maps.Values(opcodeMap))
	for _, op := range ops {
		insts = append(insts, decodeTable[op])
	}
	return
}
