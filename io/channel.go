// Package io provides the devices attached to the LS-8 processor.
// It includes the 256 byte memory (Ram), the program image loader (Rom),
// the output sink for PRN and PRA (Tape), and the interrupt sources
// (Interrupt, Timer, Keyboard).
package io

// Memory defines the byte addressable store seen by the processor.
// Addresses are 8 bits wide, so every address is valid.
type Memory interface {
	// Read returns the value at an address.
	Read(address byte) byte
	// Write stores a value at an address.
	Write(address byte, value byte)
}

// Printer defines the sink for printed output. Writes are fire-and-forget.
type Printer interface {
	// Number emits the decimal form of a value.
	Number(value byte)
	// Char emits the character whose code point is value.
	Char(value byte)
}
