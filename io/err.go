package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Rom errors
	ErrRomSyntax   = errors.New(f("not an 8 bit binary literal"))
	ErrRomTooLarge = errors.New(f("image exceeds memory"))
)

// ErrRomLine indicates the location of a program image error.
type ErrRomLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrRomLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrRomLine) Unwrap() error {
	return err.Err
}
