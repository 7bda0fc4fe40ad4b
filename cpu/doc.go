// Package cpu implements the interpreter and assembler for a toy 6502 system.
//
// The machine has a 64KB memory image holding the zero page, the hardware
// stack in page 1, a 32x32 framebuffer at $0200, and code loaded at $0600.
// Cell $FE is refreshed with a random byte every instruction, and cell $FF
// holds the last key pressed.
//
// The assembler accepts one instruction per line with optional labels,
// define directives, dcb tables, and compile-time $(expr) expressions.
// Forward label references are patched once the whole source is read.
package cpu
