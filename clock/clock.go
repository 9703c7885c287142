// Package clock drives a cycle function at a fixed period.
//
// Each tick runs to completion before the next one may start. Timing
// accuracy is whatever the host scheduler provides; missed ticks are
// dropped rather than queued.
package clock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrRunning = errors.New(f("clock already running"))
	ErrPeriod  = errors.New(f("clock period must be positive"))
)

const (
	DEFAULT_HZ = 1000 // Default tick rate.
)

// TickFunc runs a single cycle. The clock stops when done is true or
// an error is returned.
type TickFunc func() (done bool, err error)

// Clock calls a TickFunc once per Period on its own goroutine.
type Clock struct {
	Period time.Duration

	mutex   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	ticks   int
	running bool
}

// New creates a clock ticking at hz cycles per second.
func New(hz int) (clk *Clock) {
	if hz <= 0 {
		hz = DEFAULT_HZ
	}

	clk = &Clock{
		Period: time.Second / time.Duration(hz),
	}
	return
}

// Start begins calling tick. It returns ErrRunning if the clock has
// already been started and not yet stopped.
func (clk *Clock) Start(ctx context.Context, tick TickFunc) (err error) {
	clk.mutex.Lock()
	defer clk.mutex.Unlock()

	if clk.running {
		err = ErrRunning
		return
	}

	if clk.Period <= 0 {
		err = ErrPeriod
		return
	}

	ctx, clk.cancel = context.WithCancel(ctx)
	clk.done = make(chan struct{})
	clk.err = nil
	clk.ticks = 0
	clk.running = true

	go clk.run(ctx, clk.cancel, tick, clk.done)

	return
}

func (clk *Clock) run(ctx context.Context, cancel context.CancelFunc, tick TickFunc, done chan struct{}) {
	defer cancel()

	ticker := time.NewTicker(clk.Period)
	defer ticker.Stop()

	var err error
	defer func() {
		clk.mutex.Lock()
		clk.err = err
		clk.running = false
		clk.mutex.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// A stop request wins over a tick that is ready at the same time.
		if ctx.Err() != nil {
			return
		}

		var finished bool
		finished, err = tick()

		clk.mutex.Lock()
		clk.ticks++
		clk.mutex.Unlock()

		if finished || err != nil {
			return
		}
	}
}

// Stop prevents any further ticks and waits for a tick in progress to
// complete. It must not be called from within the TickFunc.
func (clk *Clock) Stop() {
	clk.mutex.Lock()
	cancel := clk.cancel
	done := clk.done
	clk.mutex.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Wait blocks until the clock stops, and returns the error that stopped it.
func (clk *Clock) Wait() (err error) {
	clk.mutex.Lock()
	done := clk.done
	clk.mutex.Unlock()

	if done == nil {
		return
	}

	<-done

	clk.mutex.Lock()
	err = clk.err
	clk.mutex.Unlock()
	return
}

// Running returns true while ticks are being scheduled.
func (clk *Clock) Running() bool {
	clk.mutex.Lock()
	defer clk.mutex.Unlock()
	return clk.running
}

// Ticks returns the number of ticks run since the last Start.
func (clk *Clock) Ticks() int {
	clk.mutex.Lock()
	defer clk.mutex.Unlock()
	return clk.ticks
}
