package cpu

// The stack grows downward from SP_INIT through memory, with SP (R7)
// addressing the most recently pushed value. Neither overflow into
// general memory nor wrap past address 0 is detected.

// PushValue pre-decrements SP, then stores value at the new SP.
func (cpu *Cpu) PushValue(value byte) {
	cpu.Register[REG_SP]--
	cpu.Memory.Write(cpu.Register[REG_SP], value)
}

// PopValue loads the value at SP, then post-increments SP.
func (cpu *Cpu) PopValue() (value byte) {
	value = cpu.Memory.Read(cpu.Register[REG_SP])
	cpu.Register[REG_SP]++
	return
}

// PushRegister pushes the value of a register.
func (cpu *Cpu) PushRegister(index byte) (err error) {
	value, err := cpu.Register.Get(index)
	if err != nil {
		return
	}

	cpu.PushValue(value)
	return
}

// PopRegister pops the top of the stack into a register.
func (cpu *Cpu) PopRegister(index byte) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister
		return
	}

	cpu.Register[index] = cpu.PopValue()
	return
}

// Peek returns the top of the stack without moving SP.
func (cpu *Cpu) Peek() byte {
	return cpu.Memory.Read(cpu.Register[REG_SP])
}
