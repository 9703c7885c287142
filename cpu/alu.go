package cpu

// AluOp is an arithmetic operation wired to an opcode.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
)

func (op AluOp) String() string {
	switch op {
	case ALU_OP_ADD:
		return "add"
	case ALU_OP_MUL:
		return "mul"
	}
	return "???"
}

// Add returns a+b, wrapped to 8 bits.
func Add(a, b byte) byte {
	return a + b
}

// Multiply returns a*b, wrapped to 8 bits.
func Multiply(a, b byte) byte {
	return a * b
}

// Compare returns the flags for an unsigned comparison of a against b.
// Exactly one of FL_EQUAL, FL_GREATER, FL_LESS is set.
func Compare(a, b byte) (fl byte) {
	switch {
	case a == b:
		fl = FL_EQUAL
	case a > b:
		fl = FL_GREATER
	default:
		fl = FL_LESS
	}
	return
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op AluOp, input byte, value byte) (output byte) {
	switch op {
	case ALU_OP_ADD:
		output = Add(input, value)
	case ALU_OP_MUL:
		output = Multiply(input, value)
	default:
		panic("unknown ALU op")
	}
	return
}
