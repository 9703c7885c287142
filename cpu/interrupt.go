package cpu

import (
	"log"
)

// IrqState is the interrupt controller state.
type IrqState int

const (
	IRQ_IDLE      = IrqState(0) // idle
	IRQ_SERVICING = IrqState(1) // servicing
)

func (state IrqState) String() string {
	switch state {
	case IRQ_IDLE:
		return "idle"
	case IRQ_SERVICING:
		return "servicing"
	}
	return "???"
}

// Interrupt checks the IS register and, if an interrupt is pending,
// saves the machine context on the stack and transfers control to the
// handler whose address is stored at IRQ_VECTOR.
//
// Context is saved as the PC followed by R0 through R7. FL is not saved.
// Every pending bit pattern is serviced by the same single handler.
func (cpu *Cpu) Interrupt() (serviced bool) {
	pending := cpu.Register[REG_IS]
	if pending == 0 {
		return
	}

	cpu.IrqState = IRQ_SERVICING

	cpu.PushValue(cpu.Pc)
	for n := range REGISTER_COUNT {
		cpu.PushValue(cpu.Register[n])
	}

	cpu.Register[REG_IS] = 0
	cpu.Pc = cpu.Memory.Read(IRQ_VECTOR)

	if cpu.Verbose {
		log.Printf("cpu: interrupt 0b%08b, handler at %02x", pending, cpu.Pc)
	}

	cpu.Interrupts++
	cpu.IrqState = IRQ_IDLE

	serviced = true
	return
}
