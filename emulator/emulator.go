// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"sync"
	"time"

	"github.com/ezrec/ls8/clock"
	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

const (
	CLOCK_HZ     = clock.DEFAULT_HZ // Default instruction rate.
	TIMER_PERIOD = time.Second      // Default timer interrupt period.
)

var _emulator_defines = map[string]string{
	"CLOCK_HZ": fmt.Sprintf("%v", CLOCK_HZ),
}

// Emulator state. CPU + memory + devices + clock.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded program, if assembled.

	Ram      io.Ram       // Main memory.
	Rom      io.Rom       // Program image, loaded at address 0 on Reset.
	Tape     io.Tape      // PRN/PRA output.
	Irq      io.Interrupt // Pending interrupts from devices.
	Timer    io.Timer     // Periodic interrupt source.
	Keyboard io.Keyboard  // Key press interrupt source.

	Clock *clock.Clock // Cycle clock.

	mutex sync.Mutex // Serializes cycles against Poke and Reset.

	keyActive bool // A key interrupt frame is on the stack.
	keyFrame  byte // SP before the key interrupt frame was pushed.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
		Clock:   clock.New(CLOCK_HZ),
	}

	emu.Cpu = cpu.NewCpu(&emu.Ram, &emu.Tape)
	emu.Timer.Line = &emu.Irq
	emu.Timer.Period = TIMER_PERIOD

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Ram.Defines(),
		emu.Irq.Defines(),
		emu.Keyboard.Defines(),
	)
}

// Close the emulator, stopping the clock.
func (emu *Emulator) Close() (err error) {
	emu.Stop()

	return
}

// Reset clears memory, loads the program image at address 0, and
// resets the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if len(emu.Program.Lines) != 0 {
		emu.Rom.Data = emu.Program.Binary()
	}

	if len(emu.Rom.Data) > io.RAM_SIZE {
		err = io.ErrRomTooLarge
		return
	}

	emu.Ram.Reset()
	for addr, value := range emu.Rom.Bytes() {
		emu.Ram.Write(addr, value)
	}

	emu.Irq.Take()
	emu.Tape.Rewind()
	emu.keyActive = false

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return
}

// Poke writes directly to memory, bypassing the CPU.
func (emu *Emulator) Poke(address byte, value byte) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.Ram.Write(address, value)
}

// Peek reads directly from memory.
func (emu *Emulator) Peek(address byte) byte {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.Ram.Read(address)
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number for the instruction at PC,
// or 0 if the program was not assembled.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// deliverKey hands the next queued key to the CPU. Keys are held while
// the previous key is still pending in IS, or while its interrupt frame
// is still on the stack.
func (emu *Emulator) deliverKey() {
	sp := emu.Cpu.Register[cpu.REG_SP]
	if emu.keyActive && sp >= emu.keyFrame {
		emu.keyActive = false
	}

	if emu.keyActive || emu.Cpu.Register[cpu.REG_IS]&io.IRQ_KEYBOARD != 0 {
		return
	}

	if emu.Keyboard.Deliver(&emu.Ram, &emu.Irq) {
		emu.keyActive = true
		emu.keyFrame = sp
	}
}

// Tick performs a single cycle of the emulator. Pending device interrupts
// are latched into IS before the CPU checks it.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if emu.Cpu.Halted {
		done = true
		return
	}

	emu.deliverKey()
	emu.Cpu.Register[cpu.REG_IS] |= emu.Irq.Take()

	err = emu.Cpu.Tick()
	done = emu.Cpu.Halted
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
	}

	return
}

// Start runs the emulator on its clock until HLT, a fatal error, Stop,
// or the context is done. The timer interrupt source runs alongside.
func (emu *Emulator) Start(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)

	err = emu.Clock.Start(ctx, emu.Tick)
	if err != nil {
		cancel()
		return
	}

	go func() {
		defer cancel()
		emu.Clock.Wait()
	}()

	go emu.Timer.Run(ctx)

	if emu.Verbose {
		log.Printf("emulator: started at %v per tick", emu.Clock.Period)
	}

	return
}

// Stop halts the clock. A cycle in progress completes first.
func (emu *Emulator) Stop() {
	emu.Clock.Stop()
}

// Wait blocks until the clock stops and returns the error that stopped it.
func (emu *Emulator) Wait() (err error) {
	return emu.Clock.Wait()
}

// Run starts the emulator and waits for it to stop.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	err = emu.Start(ctx)
	if err != nil {
		return
	}

	err = emu.Wait()
	return
}
