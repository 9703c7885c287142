package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted        = errors.New(f("halted"))
	ErrMemoryMissing = errors.New(f("memory missing"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))
	ErrRegister      = errors.New(f("register out of range"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs  = errors.New(f("excessive arguments"))
	ErrOpcodeMissingArg = errors.New(f("argument missing"))
	ErrMnemonicInvalid  = errors.New(f("mnemonic invalid"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrValueRange       = errors.New(f("value out of range"))
	ErrProgramTooLarge  = errors.New(f("program exceeds memory"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode reports the instruction that failed to execute.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", byte(eo.Opcode), Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
