package cpu

// handlerFunc executes one instruction given its two operand bytes.
type handlerFunc func(cpu *Cpu, a, b byte) error

// dispatchTable maps every valid opcode to its handler.
var dispatchTable = [256]handlerFunc{
	OP_HLT:  (*Cpu).opHlt,
	OP_RET:  (*Cpu).opRet,
	OP_PRA:  (*Cpu).opPra,
	OP_PRN:  (*Cpu).opPrn,
	OP_CALL: (*Cpu).opCall,
	OP_POP:  (*Cpu).opPop,
	OP_PUSH: (*Cpu).opPush,
	OP_JMP:  (*Cpu).opJmp,
	OP_JEQ:  (*Cpu).opJeq,
	OP_JNE:  (*Cpu).opJne,
	OP_JLT:  (*Cpu).opJlt,
	OP_JGT:  (*Cpu).opJgt,
	OP_LDI:  (*Cpu).opLdi,
	OP_ST:   (*Cpu).opSt,
	OP_CMP:  (*Cpu).opCmp,
	OP_ADD:  (*Cpu).opAdd,
	OP_MUL:  (*Cpu).opMul,
}

func (cpu *Cpu) opHlt(a, b byte) error {
	cpu.Halted = true
	return nil
}

func (cpu *Cpu) opLdi(reg, value byte) error {
	return cpu.Register.Set(reg, value)
}

func (cpu *Cpu) opSt(reg_a, reg_b byte) error {
	cpu.Memory.Write(cpu.Register[reg_a], cpu.Register[reg_b])
	return nil
}

func (cpu *Cpu) alu(op AluOp, reg_a, reg_b byte) error {
	cpu.Register[reg_a] = doAlu(op, cpu.Register[reg_a], cpu.Register[reg_b])
	return nil
}

func (cpu *Cpu) opAdd(reg_a, reg_b byte) error {
	return cpu.alu(ALU_OP_ADD, reg_a, reg_b)
}

func (cpu *Cpu) opMul(reg_a, reg_b byte) error {
	return cpu.alu(ALU_OP_MUL, reg_a, reg_b)
}

func (cpu *Cpu) opCmp(reg_a, reg_b byte) error {
	cpu.Fl = Compare(cpu.Register[reg_a], cpu.Register[reg_b])
	return nil
}

func (cpu *Cpu) opPush(reg, _ byte) error {
	return cpu.PushRegister(reg)
}

func (cpu *Cpu) opPop(reg, _ byte) error {
	return cpu.PopRegister(reg)
}

func (cpu *Cpu) opCall(reg, _ byte) error {
	// Return address skips the CALL opcode and its operand.
	cpu.PushValue(cpu.Pc + 2)
	cpu.Pc = cpu.Register[reg]
	return nil
}

func (cpu *Cpu) opRet(a, b byte) error {
	cpu.Pc = cpu.PopValue()
	return nil
}

func (cpu *Cpu) opJmp(reg, _ byte) error {
	cpu.Pc = cpu.Register[reg]
	return nil
}

// jumpIf jumps to the address in reg when cond holds, otherwise
// steps over the branch instruction.
func (cpu *Cpu) jumpIf(cond bool, reg byte) error {
	if cond {
		cpu.Pc = cpu.Register[reg]
	} else {
		cpu.Pc += 2
	}
	return nil
}

func (cpu *Cpu) opJeq(reg, _ byte) error {
	return cpu.jumpIf(cpu.Fl&FL_EQUAL != 0, reg)
}

func (cpu *Cpu) opJne(reg, _ byte) error {
	return cpu.jumpIf(cpu.Fl&FL_EQUAL == 0, reg)
}

func (cpu *Cpu) opJlt(reg, _ byte) error {
	return cpu.jumpIf(cpu.Fl&FL_LESS != 0, reg)
}

func (cpu *Cpu) opJgt(reg, _ byte) error {
	return cpu.jumpIf(cpu.Fl&FL_GREATER != 0, reg)
}

func (cpu *Cpu) opPrn(reg, _ byte) error {
	if cpu.Printer != nil {
		cpu.Printer.Number(cpu.Register[reg])
	}
	return nil
}

func (cpu *Cpu) opPra(reg, _ byte) error {
	if cpu.Printer != nil {
		cpu.Printer.Char(cpu.Register[reg])
	}
	return nil
}
