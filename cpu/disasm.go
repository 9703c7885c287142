package cpu

import (
	"fmt"
	"iter"
)

// Decode reads the instruction at an address without executing it.
func Decode(mem Memory, addr byte) Instruction {
	return Instruction{
		Opcode: Opcode(mem.Read(addr)),
		A:      mem.Read(addr + 1),
		B:      mem.Read(addr + 2),
	}
}

// Disassemble walks memory from start for size bytes, yielding the
// address and text of each instruction. Invalid opcodes are one byte.
func Disassemble(mem Memory, start byte, size int) iter.Seq2[byte, string] {
	return func(yield func(addr byte, text string) bool) {
		for offset := 0; offset < size; {
			addr := start + byte(offset)
			inst := Decode(mem, addr)
			step := 1
			if inst.Opcode.Valid() {
				step = inst.Opcode.Size()
			}
			var hex string
			for n := range step {
				hex += fmt.Sprintf("%02x ", mem.Read(addr+byte(n)))
			}
			if !yield(addr, fmt.Sprintf("%-9s %v", hex, inst)) {
				return
			}
			offset += step
		}
	}
}
