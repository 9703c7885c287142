package cpu

import (
	"iter"
)

// Line is a single line of assembled source and the bytes it produced.
type Line struct {
	LineNo int      // Source line number.
	Addr   int      // Address of the first byte.
	Words  []string // Source words, after expansion.
	Bytes  []byte   // Encoded bytes.
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

// Debug locates the listing line that produced the byte at an address.
type Debug struct {
	*Line
	Index int
}

func (prog *Program) Debug(addr byte) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= line.Addr && int(addr) < line.Addr+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr) - line.Addr,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes in the program image.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		end := line.Addr + len(line.Bytes)
		if end > size {
			size = end
		}
	}
	return
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, prog.Size())
	for addr, value := range prog.Bytes() {
		bins[addr] = value
	}

	return
}

// Bytes iterates over every assembled byte and its address.
func (prog *Program) Bytes() iter.Seq2[byte, byte] {
	return func(yield func(addr byte, value byte) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(byte(line.Addr+n), value) {
					return
				}
			}
		}
	}
}
