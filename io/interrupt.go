package io

import (
	"iter"
	"maps"
	"sync/atomic"
)

// Interrupt status bits raised by the attached devices.
const (
	IRQ_TIMER    = byte(1 << 0) // Timer period elapsed.
	IRQ_KEYBOARD = byte(1 << 1) // Key available at KEY_ADDR.
)

// Interrupt latches interrupt requests from devices running on their own
// goroutines. The owner of the processor drains it between cycles.
type Interrupt struct {
	pending atomic.Uint32
}

// Defines returns an iter of defines for the interrupt lines.
func (irq *Interrupt) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"IRQ_TIMER":    "0x01",
		"IRQ_KEYBOARD": "0x02",
	})
}

// Raise marks the bits in mask as pending.
func (irq *Interrupt) Raise(mask byte) {
	irq.pending.Or(uint32(mask))
}

// Pending returns the pending bits without clearing them.
func (irq *Interrupt) Pending() byte {
	return byte(irq.pending.Load())
}

// Take returns and clears the pending bits.
func (irq *Interrupt) Take() byte {
	return byte(irq.pending.Swap(0))
}
