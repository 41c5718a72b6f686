package lmc

import (
	"errors"

	"github.com/lmcsim/lmc/translate"
)

var f = translate.From

// Error categories. Every error returned by this package wraps exactly
// one of these (or is an ErrIllegal), so callers can classify failures
// with errors.Is.
var (
	ErrAssembly = errors.New(f("assembly"))
	ErrLoad     = errors.New(f("load"))
	ErrInput    = errors.New(f("input"))
	ErrMemory   = errors.New(f("memory"))
)

var (
	// Machine errors
	ErrHalted     = errors.New(f("machine halted"))
	ErrInputEmpty = errors.New(f("input queue empty"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandExtra       = errors.New(f("excessive arguments"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrInstructionMissing = errors.New(f("instruction missing"))
	ErrProgramTooLong     = errors.New(f("program too long"))
)

// ErrIllegal is an instruction word the machine cannot execute.
type ErrIllegal Code

func (ei ErrIllegal) Error() string {
	return f("illegal instruction %03d", int(ei))
}

func (ei ErrIllegal) Is(err error) (ok bool) {
	_, ok = err.(ErrIllegal)
	return
}

// ErrCounter is a program counter outside the memory store.
type ErrCounter int

func (ec ErrCounter) Error() string {
	return f("program counter %d out of range", int(ec))
}

func (ec ErrCounter) Is(err error) (ok bool) {
	_, ok = err.(ErrCounter)
	return
}

// ErrAddress is a memory address outside the memory store.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d out of range", int(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrWord is a value outside the machine word range.
type ErrWord int

func (ew ErrWord) Error() string {
	return f("value %d out of range", int(ew))
}

func (ew ErrWord) Is(err error) (ok bool) {
	_, ok = err.(ErrWord)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelMissing)
	return
}

type ErrMnemonicUnknown string

func (em ErrMnemonicUnknown) Error() string {
	return f("'%v' is not an instruction", string(em))
}

func (em ErrMnemonicUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrMnemonicUnknown)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
