// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), a flags register (FL), and eight
// 8-bit general-purpose registers (R0-R7). R6 doubles as the interrupt status
// register (IS) and R7 as the stack pointer (SP). Instructions are one to
// three bytes long; the upper two bits of the opcode give the operand count.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting labels, equates, raw data, and compile-time expression
// evaluation.
package cpu
