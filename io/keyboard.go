package io

import (
	"context"
	"io"
	"iter"
	"maps"
	"sync"
)

const (
	KEY_ADDR   = byte(0xf4) // Memory address receiving the last key pressed.
	KEY_BUFFER = 16         // Keys held before new presses are dropped.
)

// Keyboard queues key presses from the host. Each key is delivered between
// cycles by writing it to KEY_ADDR and raising IRQ_KEYBOARD.
type Keyboard struct {
	once sync.Once
	keys chan byte
}

// Defines returns an iter of defines for the keyboard.
func (kb *Keyboard) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"KEY_ADDR": "0xf4",
	})
}

func (kb *Keyboard) queue() chan byte {
	kb.once.Do(func() {
		kb.keys = make(chan byte, KEY_BUFFER)
	})
	return kb.keys
}

// Press queues a key. Returns false if the queue is full and the key
// was dropped.
func (kb *Keyboard) Press(key byte) (ok bool) {
	select {
	case kb.queue() <- key:
		ok = true
	default:
	}
	return
}

// Poll returns the next queued key, if any.
func (kb *Keyboard) Poll() (key byte, ok bool) {
	select {
	case key = <-kb.queue():
		ok = true
	default:
	}
	return
}

// Deliver moves the next queued key into memory and raises its interrupt.
func (kb *Keyboard) Deliver(mem Memory, line *Interrupt) (ok bool) {
	key, ok := kb.Poll()
	if !ok {
		return
	}

	mem.Write(KEY_ADDR, key)
	line.Raise(IRQ_KEYBOARD)
	return
}

// Run presses every byte read from input until end of input or the
// context is done.
func (kb *Keyboard) Run(ctx context.Context, input io.Reader) (err error) {
	var one [1]byte
	for {
		if ctx.Err() != nil {
			return
		}
		var n int
		n, err = input.Read(one[:])
		if n == 1 {
			key := one[0]
			// Raw terminals send CR for Enter.
			if key == '\r' {
				key = '\n'
			}
			kb.Press(key)
		}
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}
