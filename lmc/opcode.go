package lmc

import (
	"fmt"
)

// Op is the operation-selecting leading digit of an instruction word.
type Op int

const (
	OP_HLT = Op(0) // Halt the machine.
	OP_ADD = Op(1) // Accumulator += memory[operand], wraps at 1000.
	OP_SUB = Op(2) // Accumulator -= memory[operand], wraps below 0.
	OP_STA = Op(3) // memory[operand] = Accumulator.
	OP_LDA = Op(5) // Accumulator = memory[operand].
	OP_BRA = Op(6) // Counter = operand.
	OP_BRZ = Op(7) // Counter = operand if Accumulator == 0.
	OP_BRP = Op(8) // Counter = operand if the Positive flag is set.
	OP_IO  = Op(9) // Input/output, selected by the operand sub-code.
)

// Operand sub-codes of the OP_IO class.
const (
	IO_INP = 1 // Dequeue an input word into the Accumulator.
	IO_OUT = 2 // Append the Accumulator to the output queue.
)

// Complete instruction words for the operand-less operations.
const (
	CODE_HLT = Code(0)
	CODE_INP = Code(901)
	CODE_OUT = Code(902)
)

// Code is a single encoded instruction word in [0, 999].
type Code int

// Op returns the operation digit of the instruction word.
func (code Code) Op() Op {
	return Op(code / 100)
}

// Operand returns the trailing two digits of the instruction word.
func (code Code) Operand() int {
	return int(code % 100)
}

// opName maps the operand-bearing operation digits to their mnemonics.
// Digits 0, 4 and 9 are absent: HLT/INP/OUT are complete words, and 4
// is reserved.
var opName = map[Op]string{
	OP_ADD: "ADD",
	OP_SUB: "SUB",
	OP_STA: "STA",
	OP_LDA: "LDA",
	OP_BRA: "BRA",
	OP_BRZ: "BRZ",
	OP_BRP: "BRP",
}

// String disassembles the instruction word. Words that decode to no
// operation render as raw data.
func (code Code) String() string {
	switch code {
	case CODE_HLT:
		return "HLT"
	case CODE_INP:
		return "INP"
	case CODE_OUT:
		return "OUT"
	}

	name, ok := opName[code.Op()]
	if !ok {
		return fmt.Sprintf("%03d", int(code))
	}

	return fmt.Sprintf("%s %d", name, code.Operand())
}

// mnemonicMap maps operand-bearing mnemonics to operation digits.
// This is the assembler's table; the machine dispatches on the decoded
// digit independently, since the two accept different domains (the
// assembler never emits digit 4, the machine must still decode it).
var mnemonicMap = map[string]Op{
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"STA": OP_STA,
	"LDA": OP_LDA,
	"BRA": OP_BRA,
	"BRZ": OP_BRZ,
	"BRP": OP_BRP,
}

// fixedMap maps operand-less mnemonics to complete instruction words.
var fixedMap = map[string]Code{
	"HLT": CODE_HLT,
	"INP": CODE_INP,
	"OUT": CODE_OUT,
}
