package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRam(t *testing.T) {
	assert := assert.New(t)

	ram := &Ram{}
	assert.Equal(byte(0), ram.Read(0xff))

	ram.Write(0x10, 0xaa)
	assert.Equal(byte(0xaa), ram.Read(0x10))

	ram.Reset()
	assert.Equal(byte(0), ram.Read(0x10))
}

func TestRam_LoadWrap(t *testing.T) {
	assert := assert.New(t)

	ram := &Ram{}
	ram.Load(0xfe, []byte{1, 2, 3})
	assert.Equal(byte(1), ram.Read(0xfe))
	assert.Equal(byte(2), ram.Read(0xff))
	assert.Equal(byte(3), ram.Read(0x00))
}

func TestTape(t *testing.T) {
	assert := assert.New(t)

	out := &strings.Builder{}
	tape := &Tape{Output: out}

	tape.Number(0)
	tape.Number(255)
	tape.Char('A')
	tape.Char(0xe9)

	assert.Equal("0\n255\nAé", out.String())
	assert.Equal(len("0\n255\nAé"), tape.Written())
	assert.NoError(tape.Err)
}

type failWriter struct {
	count int
}

func (fw *failWriter) Write(data []byte) (int, error) {
	fw.count++
	return 0, ErrRomSyntax
}

func TestTape_Error(t *testing.T) {
	assert := assert.New(t)

	fw := &failWriter{}
	tape := &Tape{Output: fw}

	tape.Number(1)
	tape.Char('x')
	assert.ErrorIs(tape.Err, ErrRomSyntax)
	assert.Equal(1, fw.count)

	tape.Rewind()
	assert.NoError(tape.Err)
	assert.Equal(0, tape.Written())
}

func TestTape_NoOutput(t *testing.T) {
	tape := &Tape{}
	tape.Number(1)
	tape.Char('x')
}
