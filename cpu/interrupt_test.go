package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterrupt_Idle(t *testing.T) {
	assert := assert.New(t)

	cp, _, _ := newTestCpu()
	cp.Pc = 0x20

	assert.False(cp.Interrupt())
	assert.Equal(byte(0x20), cp.Pc)
	assert.Equal(SP_INIT, cp.Register[REG_SP])
	assert.Equal(0, cp.Interrupts)
}

func TestInterrupt_Service(t *testing.T) {
	assert := assert.New(t)

	cp, ram, _ := newTestCpu()
	ram.Write(IRQ_VECTOR, 0x40)

	cp.Pc = 0x12
	cp.Fl = FL_GREATER
	for n := range 6 {
		cp.Register[n] = byte(10 * (n + 1))
	}
	cp.Register[REG_IS] = 0b00000001

	assert.True(cp.Interrupt())

	assert.Equal(byte(0), cp.Register[REG_IS])
	assert.Equal(byte(0x40), cp.Pc)
	assert.Equal(IRQ_IDLE, cp.IrqState)
	assert.Equal(1, cp.Interrupts)

	// FL is not part of the saved context, and is left untouched.
	assert.Equal(FL_GREATER, cp.Fl)

	sp := cp.Register[REG_SP]
	assert.Equal(SP_INIT-9, sp)

	// Top of stack down: R7..R0, then the interrupted PC.
	assert.Equal(SP_INIT-8, ram.Read(sp+0)) // R7 as it was when pushed
	assert.Equal(byte(0b00000001), ram.Read(sp+1))
	for n := range 6 {
		assert.Equal(byte(10*(n+1)), ram.Read(sp+7-byte(n)))
	}
	assert.Equal(byte(0x12), ram.Read(sp+8))
}

func TestInterrupt_AnyPattern(t *testing.T) {
	assert := assert.New(t)

	for _, pattern := range []byte{0b01, 0b10, 0b11, 0x80} {
		cp, ram, _ := newTestCpu()
		ram.Write(IRQ_VECTOR, 0x33)
		cp.Register[REG_IS] = pattern

		assert.True(cp.Interrupt())
		assert.Equal(byte(0x33), cp.Pc)
		assert.Equal(byte(0), cp.Register[REG_IS])
	}
}

func TestInterrupt_Handler(t *testing.T) {
	assert := assert.New(t)

	cp, ram, out := newTestCpu(
		byte(OP_LDI), 0, 5, // 0
		byte(OP_PRN), 0, // 3
		byte(OP_HLT), // 5
	)

	ram.Write(IRQ_VECTOR, 0x40)
	ram.Load(0x40, []byte{
		byte(OP_LDI), 0, 'I',
		byte(OP_PRA), 0,
		byte(OP_POP), 7,
		byte(OP_POP), 0, // saved IS, discarded
		byte(OP_POP), 5,
		byte(OP_POP), 4,
		byte(OP_POP), 3,
		byte(OP_POP), 2,
		byte(OP_POP), 1,
		byte(OP_POP), 0,
		byte(OP_RET),
	})

	assert.NoError(cp.Tick())
	cp.Register[REG_IS] = 0b1

	runTestCpu(t, cp, 50)

	assert.Equal("I5\n", out.String())
	assert.Equal(byte(5), cp.Register[0])
	assert.Equal(byte(0), cp.Register[REG_IS])
	assert.Equal(SP_INIT, cp.Register[REG_SP])
	assert.Equal(1, cp.Interrupts)
}

func TestInterrupt_BeforeFetch(t *testing.T) {
	assert := assert.New(t)

	cp, ram, _ := newTestCpu(
		byte(OP_HLT),
	)
	ram.Write(IRQ_VECTOR, 0x80)
	ram.Load(0x80, []byte{byte(OP_LDI), 1, 0x42})
	cp.Register[REG_IS] = 1

	assert.NoError(cp.Tick())
	assert.False(cp.Halted)
	assert.Equal(byte(0x42), cp.Register[1])
	assert.Equal(byte(0x83), cp.Pc)
}
