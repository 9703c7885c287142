package io

import (
	"io"
	"strconv"
)

// Tape provides sequential output for the PRN and PRA instructions.
// It wraps an io.Writer; the first write error is kept in Err and
// later output is discarded.
type Tape struct {
	Output io.Writer
	Err    error

	written int
}

var _ Printer = (*Tape)(nil)

// Rewind clears the error state and byte counter.
func (tc *Tape) Rewind() {
	tc.Err = nil
	tc.written = 0
}

// Written returns the number of bytes emitted since the last Rewind.
func (tc *Tape) Written() int {
	return tc.written
}

func (tc *Tape) write(data []byte) {
	if tc.Output == nil || tc.Err != nil {
		return
	}

	n, err := tc.Output.Write(data)
	tc.written += n
	if err != nil {
		tc.Err = err
	}
}

// Number writes the decimal form of value, followed by a newline.
func (tc *Tape) Number(value byte) {
	tc.write(strconv.AppendUint(nil, uint64(value), 10))
	tc.write([]byte{'\n'})
}

// Char writes the character with code point value.
func (tc *Tape) Char(value byte) {
	tc.write([]byte(string(rune(value))))
}
