package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the first byte of an instruction.
type Opcode byte

// Instruction set. The upper two bits of each opcode are the operand count.
const (
	OP_HLT  = Opcode(0b00000001) // hlt
	OP_RET  = Opcode(0b00001001) // ret
	OP_PRA  = Opcode(0b01000010) // pra
	OP_PRN  = Opcode(0b01000011) // prn
	OP_CALL = Opcode(0b01001000) // call
	OP_POP  = Opcode(0b01001100) // pop
	OP_PUSH = Opcode(0b01001101) // push
	OP_JMP  = Opcode(0b01010000) // jmp
	OP_JEQ  = Opcode(0b01010001) // jeq
	OP_JNE  = Opcode(0b01010010) // jne
	OP_JLT  = Opcode(0b01010011) // jlt
	OP_JGT  = Opcode(0b01010100) // jgt
	OP_LDI  = Opcode(0b10011001) // ldi
	OP_ST   = Opcode(0b10011010) // st
	OP_CMP  = Opcode(0b10100000) // cmp
	OP_ADD  = Opcode(0b10101000) // add
	OP_MUL  = Opcode(0b10101010) // mul
)

// ArgKind is how an operand byte is interpreted.
type ArgKind int

const (
	ARG_NONE      = ArgKind(0) // Operand not used.
	ARG_REGISTER  = ArgKind(1) // Register index, 0-7.
	ARG_IMMEDIATE = ArgKind(2) // Literal byte value.
)

// opcodeInfo is the static decode information for a single opcode.
type opcodeInfo struct {
	Mnemonic string
	Args     [2]ArgKind
	SetsPc   bool // Handler owns the PC update.
}

var opcodeTable = map[Opcode]opcodeInfo{
	OP_HLT:  {"HLT", [2]ArgKind{}, false},
	OP_RET:  {"RET", [2]ArgKind{}, true},
	OP_PRA:  {"PRA", [2]ArgKind{ARG_REGISTER}, false},
	OP_PRN:  {"PRN", [2]ArgKind{ARG_REGISTER}, false},
	OP_CALL: {"CALL", [2]ArgKind{ARG_REGISTER}, true},
	OP_POP:  {"POP", [2]ArgKind{ARG_REGISTER}, false},
	OP_PUSH: {"PUSH", [2]ArgKind{ARG_REGISTER}, false},
	OP_JMP:  {"JMP", [2]ArgKind{ARG_REGISTER}, true},
	OP_JEQ:  {"JEQ", [2]ArgKind{ARG_REGISTER}, true},
	OP_JNE:  {"JNE", [2]ArgKind{ARG_REGISTER}, true},
	OP_JLT:  {"JLT", [2]ArgKind{ARG_REGISTER}, true},
	OP_JGT:  {"JGT", [2]ArgKind{ARG_REGISTER}, true},
	OP_LDI:  {"LDI", [2]ArgKind{ARG_REGISTER, ARG_IMMEDIATE}, false},
	OP_ST:   {"ST", [2]ArgKind{ARG_REGISTER, ARG_REGISTER}, false},
	OP_CMP:  {"CMP", [2]ArgKind{ARG_REGISTER, ARG_REGISTER}, false},
	OP_ADD:  {"ADD", [2]ArgKind{ARG_REGISTER, ARG_REGISTER}, false},
	OP_MUL:  {"MUL", [2]ArgKind{ARG_REGISTER, ARG_REGISTER}, false},
}

// mnemonicTable maps upper-case mnemonics back to their opcode.
var mnemonicTable = func() map[string]Opcode {
	table := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		table[info.Mnemonic] = op
	}
	return table
}()

// OperandCount returns the number of operand bytes following the opcode.
func (op Opcode) OperandCount() int {
	return int(op >> 6)
}

// Size returns the encoded length of the instruction in bytes.
func (op Opcode) Size() int {
	return 1 + op.OperandCount()
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// SetsPc returns true if the instruction handler is solely responsible
// for the program counter.
func (op Opcode) SetsPc() bool {
	return opcodeTable[op].SetsPc
}

// Args returns how each operand byte is interpreted.
func (op Opcode) Args() [2]ArgKind {
	return opcodeTable[op].Args
}

func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return fmt.Sprintf("??? 0b%08b", byte(op))
	}
	return info.Mnemonic
}

// LookupMnemonic finds the opcode for an assembler mnemonic.
func LookupMnemonic(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicTable[strings.ToUpper(mnemonic)]
	return
}

// Instruction is a decoded opcode and the two bytes that follow it.
type Instruction struct {
	Opcode Opcode
	A      byte
	B      byte
}

// Operand returns the n'th operand byte.
func (inst Instruction) Operand(n int) byte {
	if n == 0 {
		return inst.A
	}
	return inst.B
}

// Bytes returns the encoded form of the instruction.
func (inst Instruction) Bytes() []byte {
	return []byte{byte(inst.Opcode), inst.A, inst.B}[:inst.Opcode.Size()]
}

// String returns the disassembly of the instruction.
func (inst Instruction) String() string {
	if !inst.Opcode.Valid() {
		return inst.Opcode.String()
	}

	args := inst.Opcode.Args()
	var words []string
	for n := range inst.Opcode.OperandCount() {
		value := inst.Operand(n)
		switch args[n] {
		case ARG_REGISTER:
			words = append(words, fmt.Sprintf("R%d", value))
		default:
			words = append(words, fmt.Sprintf("%d", value))
		}
	}

	if len(words) == 0 {
		return inst.Opcode.String()
	}

	return inst.Opcode.String() + " " + strings.Join(words, ",")
}
