package io

import (
	"iter"
	"maps"
)

const (
	RAM_SIZE = 256 // Addressable bytes.
)

// Ram is the flat 256 byte memory of the LS-8.
type Ram struct {
	Data [RAM_SIZE]byte
}

var _ Memory = (*Ram)(nil)

// Defines returns an iter of defines for the memory.
func (ram *Ram) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"RAM_SIZE": "256",
	})
}

// Reset zeros the memory.
func (ram *Ram) Reset() {
	clear(ram.Data[:])
}

func (ram *Ram) Read(address byte) byte {
	return ram.Data[address]
}

func (ram *Ram) Write(address byte, value byte) {
	ram.Data[address] = value
}

// Load copies data into memory starting at address, wrapping at the top
// of the address space.
func (ram *Ram) Load(address byte, data []byte) {
	for n, value := range data {
		ram.Data[address+byte(n)] = value
	}
}
