// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/ls8/clock"
	"github.com/ezrec/ls8/config"
	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

const (
	KEY_CTRL_C = 0x03
)

// crlfWriter expands LF to CR LF for a terminal in raw mode.
type crlfWriter struct {
	io.Writer
}

func (w crlfWriter) Write(data []byte) (n int, err error) {
	_, err = w.Writer.Write(bytes.ReplaceAll(data, []byte{'\n'}, []byte{'\r', '\n'}))
	if err != nil {
		return
	}
	n = len(data)
	return
}

// breakReader passes key presses through, and cancels on Ctrl-C.
type breakReader struct {
	io.Reader
	cancel context.CancelFunc
}

func (r breakReader) Read(data []byte) (n int, err error) {
	n, err = r.Reader.Read(data)
	if bytes.IndexByte(data[:n], KEY_CTRL_C) >= 0 {
		r.cancel()
		err = io.EOF
	}
	return
}

func main() {
	var compile string
	var program string
	var output string
	var list bool
	var write string

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v: %v", config.Path(), err)
	}

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&program, "p", "", ".ls8 program image to load")
	flag.StringVar(&output, "o", "-", "PRN/PRA output")
	flag.BoolVar(&list, "l", false, "List the program, do not execute")
	flag.StringVar(&write, "w", "", "Write the program image as .ls8 text, do not execute")
	cfg.Flags(flag.CommandLine)

	flag.Parse()

	if flag.NArg() == 1 && len(program) == 0 && len(compile) == 0 {
		program = flag.Arg(0)
	} else if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	err = cfg.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if cfg.Verbose {
		log.Printf("ls8: messages in %v", translate.Language())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.Clock = clock.New(cfg.ClockHz)
	emu.Timer.Period = cfg.TimerPeriod.Duration

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: cfg.Verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(program) != 0:
		err = emu.Rom.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	default:
		log.Fatalf("%v: one of -c or -p is required", os.Args[0])
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(write) != 0 {
		ouf, err := os.Create(write)
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		err = emu.Rom.Format(ouf)
		if err == nil {
			err = ouf.Close()
		} else {
			ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		if !list {
			return
		}
	}

	if list {
		for addr, text := range cpu.Disassemble(&emu.Ram, 0, len(emu.Rom.Data)) {
			fmt.Printf("%02x: %v\n", addr, text)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var out io.Writer = os.Stdout
	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		atexit.Register(func() { ouf.Close() })
		out = ouf
	}

	fd := int(os.Stdin.Fd())
	if cfg.Keyboard && term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			log.Printf("ls8: raw mode: %v", err)
		} else {
			atexit.Register(func() { term.Restore(fd, old) })
			if output == "-" {
				out = crlfWriter{out}
			}
			log.SetOutput(crlfWriter{os.Stderr})
		}

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go emu.Keyboard.Run(ctx, breakReader{Reader: os.Stdin, cancel: cancel})
	}

	emu.Tape.Output = out

	err = emu.Run(ctx)
	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}
	if emu.Tape.Err != nil {
		atexit.Fatalf("%v: %v", output, emu.Tape.Err)
	}

	if cfg.Verbose {
		log.Printf("ls8: %d instructions, %d interrupts", emu.Ticks(), emu.Cpu.Interrupts)
	}

	atexit.Exit(0)
}
