// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// fixup is a label reference to patch once all labels are known.
type fixup struct {
	line  int    // Index into Program.Lines.
	index int    // Byte index within the line.
	label string // Label name.
}

// Assembler is a single pass assembler for the LS-8 system.
//
// Source lines have the form:
//
//	[label:]... MNEMONIC [operand[,operand]] ; comment
//
// Registers are written R0-R7. Immediates may be numbers, 'c' characters,
// labels, equates, or $(expr) starlark expressions over equates and the
// labels defined so far. The DB directive emits raw bytes and DS emits
// zero filled space.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	prog   *Program
	fixups []fixup
	addr   int
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the byte value of a numeric word. Negative values
// down to -128 are stored in two's complement.
func valueOf(word string) (value byte, err error) {
	if len(word) > 2 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xff || v64 < -0x80 {
		err = ErrValueRange
		return
	}

	value = byte(v64)
	return
}

// registerOf decodes a register name.
func registerOf(word string) (reg byte, err error) {
	if len(word) == 2 && (word[0] == 'r' || word[0] == 'R') && word[1] >= '0' && word[1] < '0'+REGISTER_COUNT {
		reg = word[1] - '0'
		return
	}

	err = ErrRegisterInvalid
	return
}

// stripComment removes a trailing ';' or '#' comment. Comment characters
// inside a character literal are kept.
func stripComment(text string) string {
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '\'':
			if n+2 < len(text) && text[n+2] == '\'' {
				n += 2
			} else if n+3 < len(text) && text[n+1] == '\\' && text[n+3] == '\'' {
				n += 3
			}
		case ';', '#':
			return text[:n]
		}
	}
	return text
}

var labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value byte, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value8 byte
		value8, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value8))
	}
	err = nil
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > 0xff || st_int64 < -0x80 {
		err = ErrParseExpression(expr)
		return
	}
	value = byte(st_int64)
	return
}

// parseLine expands a single line into words, recording any labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.addr
		words = words[1:]
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// immediate encodes a value or label reference at bytes[index] of the
// line about to be appended.
func (asm *Assembler) immediate(word string, index int) (value byte, err error) {
	value, err = valueOf(word)
	if err == nil {
		return
	}

	if !labelRe.MatchString(word) {
		return
	}

	err = nil
	addr, ok := asm.Label[word]
	if ok {
		value = byte(addr)
		return
	}

	asm.fixups = append(asm.fixups, fixup{
		line:  len(asm.prog.Lines),
		index: index,
		label: word,
	})
	return
}

// parseWords encodes a line of words into bytes.
func (asm *Assembler) parseWords(words []string) (codes []byte, err error) {
	if len(words) == 0 {
		return
	}

	mnemonic := strings.ToUpper(words[0])
	args := words[1:]

	switch mnemonic {
	case "DB":
		if len(args) == 0 {
			err = ErrOpcodeMissingArg
			return
		}
		for n, arg := range args {
			var value byte
			value, err = asm.immediate(arg, n)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	case "DS":
		if len(args) != 1 {
			err = ErrOpcodeMissingArg
			return
		}
		var count byte
		count, err = valueOf(args[0])
		if err != nil {
			return
		}
		codes = make([]byte, int(count))
		return
	}

	op, ok := LookupMnemonic(mnemonic)
	if !ok {
		err = ErrMnemonicInvalid
		return
	}

	count := op.OperandCount()
	if len(args) < count {
		err = ErrOpcodeMissingArg
		return
	}
	if len(args) > count {
		err = ErrOpcodeExtraArgs
		return
	}

	codes = []byte{byte(op)}
	kinds := op.Args()
	for n, kind := range kinds[:count] {
		var value byte
		switch kind {
		case ARG_REGISTER:
			value, err = registerOf(args[n])
		case ARG_IMMEDIATE:
			value, err = asm.immediate(args[n], 1+n)
		}
		if err != nil {
			if n == 0 {
				err = errors.Join(ErrOpcodeArg1, err)
			} else {
				err = errors.Join(ErrOpcodeArg2, err)
			}
			return
		}
		codes = append(codes, value)
	}

	return
}

// Parse parses an input stream into an assembled Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.prog = &Program{}
	asm.fixups = nil
	asm.addr = 0
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		var codes []byte
		codes, err = asm.parseWords(words)
		if err != nil {
			return
		}

		if len(codes) == 0 {
			continue
		}

		if asm.addr+len(codes) > 256 {
			err = ErrProgramTooLarge
			return
		}

		asm.prog.Lines = append(asm.prog.Lines, Line{
			LineNo: lineno,
			Addr:   asm.addr,
			Words:  words,
			Bytes:  codes,
		})
		asm.addr += len(codes)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	for _, fix := range asm.fixups {
		addr, ok := asm.Label[fix.label]
		if !ok {
			target := asm.prog.Lines[fix.line]
			lineno = target.LineNo
			line = strings.Join(target.Words, " ")
			err = ErrLabelMissing(fix.label)
			return
		}
		asm.prog.Lines[fix.line].Bytes[fix.index] = byte(addr)
	}

	prog = asm.prog
	return
}
