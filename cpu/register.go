package cpu

import (
	"fmt"
)

// Register file layout.
const (
	REGISTER_COUNT = 8 // General purpose registers.

	REG_IS = 6 // Interrupt status.
	REG_SP = 7 // Stack pointer.
)

// Memory layout.
const (
	SP_INIT    = byte(0xf4) // Initial stack pointer, top of general memory.
	IRQ_VECTOR = byte(0xf8) // Address holding the interrupt handler entry point.
)

// Flags register bits. At most one is set after a comparison.
const (
	FL_EQUAL   = byte(0b001)
	FL_GREATER = byte(0b010)
	FL_LESS    = byte(0b100)
)

// Registers is the general purpose register bank.
type Registers [REGISTER_COUNT]byte

// Get reads a register by index.
func (r *Registers) Get(index byte) (value byte, err error) {
	if int(index) >= len(r) {
		err = ErrRegister
		return
	}

	value = r[index]
	return
}

// Set writes a register by index.
func (r *Registers) Set(index byte, value byte) (err error) {
	if int(index) >= len(r) {
		err = ErrRegister
		return
	}

	r[index] = value
	return
}

// FlagsString renders a flags byte as its set flag names.
func FlagsString(fl byte) string {
	var text string
	for _, bit := range []struct {
		mask byte
		name string
	}{
		{FL_LESS, "L"},
		{FL_GREATER, "G"},
		{FL_EQUAL, "E"},
	} {
		if fl&bit.mask != 0 {
			text += bit.name
		} else {
			text += "-"
		}
	}
	return fmt.Sprintf("%s (0x%02x)", text, fl)
}
