package io

import (
	"context"
	"time"
)

// Timer raises IRQ_TIMER once per Period.
type Timer struct {
	Period time.Duration
	Line   *Interrupt
}

// Run raises interrupts until the context is done. A zero Period or a
// missing Line disables the timer.
func (tm *Timer) Run(ctx context.Context) {
	if tm.Period <= 0 || tm.Line == nil {
		return
	}

	ticker := time.NewTicker(tm.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tm.Line.Raise(IRQ_TIMER)
		}
	}
}
