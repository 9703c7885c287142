package io

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterrupt(t *testing.T) {
	assert := assert.New(t)

	irq := &Interrupt{}
	assert.Equal(byte(0), irq.Pending())

	irq.Raise(IRQ_TIMER)
	irq.Raise(IRQ_KEYBOARD)
	irq.Raise(IRQ_TIMER)
	assert.Equal(IRQ_TIMER|IRQ_KEYBOARD, irq.Pending())

	assert.Equal(IRQ_TIMER|IRQ_KEYBOARD, irq.Take())
	assert.Equal(byte(0), irq.Take())
}

func TestInterrupt_Concurrent(t *testing.T) {
	assert := assert.New(t)

	irq := &Interrupt{}

	var wg sync.WaitGroup
	for n := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			irq.Raise(1 << n)
		}()
	}
	wg.Wait()

	assert.Equal(byte(0xff), irq.Take())
}

func TestTimer(t *testing.T) {
	assert := assert.New(t)

	irq := &Interrupt{}
	tm := &Timer{Period: time.Millisecond, Line: irq}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tm.Run(ctx)
		close(done)
	}()

	assert.Eventually(func() bool {
		return irq.Pending()&IRQ_TIMER != 0
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestTimer_Disabled(t *testing.T) {
	assert := assert.New(t)

	irq := &Interrupt{}
	tm := &Timer{Line: irq}

	// Returns at once with no period.
	tm.Run(context.Background())
	assert.Equal(byte(0), irq.Pending())
}

func TestKeyboard(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	_, ok := kb.Poll()
	assert.False(ok)

	assert.True(kb.Press('a'))
	assert.True(kb.Press('b'))

	ram := &Ram{}
	irq := &Interrupt{}

	assert.True(kb.Deliver(ram, irq))
	assert.Equal(byte('a'), ram.Read(KEY_ADDR))
	assert.Equal(IRQ_KEYBOARD, irq.Take())

	assert.True(kb.Deliver(ram, irq))
	assert.Equal(byte('b'), ram.Read(KEY_ADDR))
	assert.Equal(IRQ_KEYBOARD, irq.Take())

	assert.False(kb.Deliver(ram, irq))
	assert.Equal(byte(0), irq.Take())
}

func TestKeyboard_Full(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	for range KEY_BUFFER {
		assert.True(kb.Press('x'))
	}
	assert.False(kb.Press('y'))
}

func TestKeyboard_Run(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	err := kb.Run(context.Background(), bytes.NewReader([]byte("hi\r")))
	assert.NoError(err)

	var keys []byte
	for {
		key, ok := kb.Poll()
		if !ok {
			break
		}
		keys = append(keys, key)
	}
	assert.Equal([]byte("hi\n"), keys)
}
