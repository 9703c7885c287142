package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
)

// Rom is a program image, loaded into memory at address 0 on reset.
//
// The text form has one 8 digit binary literal per line. Anything after
// a '#' is a comment, and blank lines are ignored.
type Rom struct {
	Data []byte
}

// Bytes returns an iterator of address and value pairs of the image.
func (rc *Rom) Bytes() iter.Seq2[byte, byte] {
	return func(yield func(address byte, value byte) bool) {
		for n, value := range rc.Data {
			if !yield(byte(n), value) {
				return
			}
		}
	}
}

// Parse replaces the image with the contents of a text program.
func (rc *Rom) Parse(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var data []byte
	var lineno int
	var text string

	defer func() {
		if err != nil {
			err = &ErrRomLine{LineNo: lineno, Line: text, Err: err}
		}
	}()

	for scanner.Scan() {
		lineno++
		text = scanner.Text()

		word, _, _ := strings.Cut(text, "#")
		word = strings.TrimSpace(word)
		if len(word) == 0 {
			continue
		}

		if len(word) != 8 {
			err = ErrRomSyntax
			return
		}

		var value uint64
		value, err = strconv.ParseUint(word, 2, 8)
		if err != nil {
			err = ErrRomSyntax
			return
		}

		if len(data) == RAM_SIZE {
			err = ErrRomTooLarge
			return
		}

		data = append(data, byte(value))
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	rc.Data = data
	return
}

// Format writes the image in the text form read by Parse.
func (rc *Rom) Format(output io.Writer) (err error) {
	for _, value := range rc.Data {
		_, err = fmt.Fprintf(output, "%08b\n", value)
		if err != nil {
			return
		}
	}
	return
}

// Open parses a text program from a file.
func (rc *Rom) Open(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = rc.Parse(inf)
	return
}
