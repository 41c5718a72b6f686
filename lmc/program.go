package lmc

import (
	"iter"
)

// Opcode is a single assembled instruction with its source context.
type Opcode struct {
	LineNo int      // Source line the instruction came from.
	Addr   int      // Memory address the word loads into.
	Words  []string // Source tokens, after comment stripping.
	Code   Code     // Encoded instruction word.
}

// Program is an assembled program: the image plus per-word source records.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the source record for a memory address.
func (prog *Program) Debug(addr int) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Addr == addr {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Image returns the program image: one word per instruction, in memory
// order, ready for Lmc.LoadProgram.
func (prog *Program) Image() (image []int) {
	for _, code := range prog.Codes() {
		image = append(image, int(code))
	}

	return
}

// Codes iterates the assembled words in address order.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(addr int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Addr, op.Code) {
				return
			}
		}
	}
}
