// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

// Memory is the byte addressable store the CPU executes from.
type Memory io.Memory

// Printer is the sink for PRN and PRA output.
type Printer io.Printer

var _cpu_defines = map[string]string{
	"SP_INIT":    fmt.Sprintf("0x%02x", SP_INIT),
	"IRQ_VECTOR": fmt.Sprintf("0x%02x", IRQ_VECTOR),
	"FL_EQUAL":   fmt.Sprintf("0x%02x", FL_EQUAL),
	"FL_GREATER": fmt.Sprintf("0x%02x", FL_GREATER),
	"FL_LESS":    fmt.Sprintf("0x%02x", FL_LESS),
	"IS":         "R6",
	"SP":         "R7",
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory  Memory  // Attached memory.
	Printer Printer // Attached output sink.

	Pc       byte      // Address of the next instruction.
	Fl       byte      // Flags from the last comparison.
	Register Registers // Register bank. R6 is IS, R7 is SP.
	IrqState IrqState  // Interrupt controller state.
	Halted   bool      // Set by HLT or a fatal decode error.

	Ticks      int // Instructions executed.
	Interrupts int // Interrupts serviced.
}

// NewCpu creates a new CPU attached to memory and an output sink.
func NewCpu(memory Memory, printer Printer) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:  memory,
		Printer: printer,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and flags.
// - Sets SP to SP_INIT and PC to 0.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Pc = 0
	cpu.Fl = 0
	cpu.IrqState = IRQ_IDLE
	cpu.Halted = false
	cpu.Ticks = 0
	cpu.Interrupts = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "is", "sp",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
			if cpu.Memory != nil {
				strval += fmt.Sprintf(" %v", cpu.Fetch())
			}
		case "fl":
			strval = FlagsString(cpu.Fl)
		case "r0", "r1", "r2", "r3", "r4", "r5":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X (%d)", val, val)
		case "is":
			strval = fmt.Sprintf("%08b", cpu.Register[REG_IS])
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[REG_SP])
		case "stack":
			if cpu.Memory == nil || cpu.Register[REG_SP] == SP_INIT {
				strval = "--"
			} else {
				strval = fmt.Sprintf("%02X", cpu.Peek())
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Fetch reads the instruction at PC. Both operand bytes are always read;
// addresses wrap within the 256 byte address space.
func (cpu *Cpu) Fetch() (inst Instruction) {
	inst = Decode(cpu.Memory, cpu.Pc)
	return
}

// Tick executes a single CPU cycle: interrupt check, fetch, dispatch.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Memory == nil {
		err = ErrMemoryMissing
		return
	}

	cpu.Interrupt()

	err = cpu.Execute(cpu.Fetch())

	return
}

// Execute executes a single decoded instruction at PC.
//
// An invalid opcode or register operand halts the CPU.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			cpu.Halted = true
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, inst)
	}

	handler := dispatchTable[inst.Opcode]
	if handler == nil {
		err = ErrOpcodeInvalid
		return
	}

	args := inst.Opcode.Args()
	for n, arg := range args[:inst.Opcode.OperandCount()] {
		if arg == ARG_REGISTER && int(inst.Operand(n)) >= REGISTER_COUNT {
			err = ErrRegister
			if n == 0 {
				err = errors.Join(ErrOpcodeArg1, err)
			} else {
				err = errors.Join(ErrOpcodeArg2, err)
			}
			return
		}
	}

	err = handler(cpu, inst.A, inst.B)
	if err != nil {
		return
	}

	if !inst.Opcode.SetsPc() {
		cpu.Pc += byte(inst.Opcode.Size())
	}

	cpu.Ticks++

	return
}
