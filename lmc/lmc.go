package lmc

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

var _lmc_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MemorySize),
	"WORD_MAX":    fmt.Sprintf("%v", WordMax),
	"CODE_INP":    fmt.Sprintf("%v", int(CODE_INP)),
	"CODE_OUT":    fmt.Sprintf("%v", int(CODE_OUT)),
}

// Lmc is the simulation context for the Little Man Computer: the memory
// store, the registers, and the two word queues. Each instance owns its
// state exclusively, so multiple machines can coexist.
type Lmc struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory // Word store.

	Accumulator int  // Working register, in [0, WordMax].
	Counter     int  // Program counter, address of the next fetch.
	Positive    bool // Result of the last ADD/SUB was non-negative.
	Halted      bool // Set by HLT.

	Ticks int // Instructions executed since the last load.

	input  []int
	output []int
}

// NewLmc creates a machine in its freshly-loaded state.
func NewLmc() (m *Lmc) {
	m = &Lmc{}
	m.Reset()

	return
}

// Defines for the machine.
func (m *Lmc) Defines() iter.Seq2[string, string] {
	return maps.All(_lmc_defines)
}

// Reset restores the freshly-loaded state: zeroed memory and registers,
// Positive set, both queues empty.
func (m *Lmc) Reset() {
	if m.Verbose {
		log.Printf("lmc: reset")
	}

	m.Memory.Reset()
	m.Accumulator = 0
	m.Counter = 0
	m.Positive = true
	m.Halted = false
	m.Ticks = 0
	m.input = nil
	m.output = nil
}

// String returns the current machine state as a string.
func (m *Lmc) String() (text string) {
	regs := []string{"acc", "pc", "pos", "halt", "in", "out"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "acc":
			strval = fmt.Sprintf("%03d", m.Accumulator)
		case "pc":
			strval = fmt.Sprintf("%02d", m.Counter)
		case "pos":
			strval = fmt.Sprintf("%v", m.Positive)
		case "halt":
			strval = fmt.Sprintf("%v", m.Halted)
		case "in":
			strval = fmt.Sprintf("%v", m.input)
		case "out":
			strval = fmt.Sprintf("%v", m.output)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// LoadProgram copies a program image into memory cells 0..len(image)-1
// and restores the registers and output queue to the freshly-loaded
// state. The load is atomic: on error no machine state changes.
func (m *Lmc) LoadProgram(image []int) (err error) {
	if len(image) > MemorySize {
		return errors.Join(ErrLoad, ErrProgramTooLong)
	}
	for _, word := range image {
		if word < 0 || word > WordMax {
			return errors.Join(ErrLoad, ErrWord(word))
		}
	}

	if m.Verbose {
		log.Printf("lmc: load %d words", len(image))
	}

	m.Memory.Load(image)
	m.Accumulator = 0
	m.Counter = 0
	m.Positive = true
	m.Halted = false
	m.Ticks = 0
	m.output = nil

	return
}

// SetInput replaces the input queue with the given word sequence.
func (m *Lmc) SetInput(values []int) (err error) {
	for _, value := range values {
		if value < 0 || value > WordMax {
			return errors.Join(ErrInput, ErrWord(value))
		}
	}

	m.input = slices.Clone(values)
	return
}

// Pending returns the number of input words not yet consumed.
func (m *Lmc) Pending() int {
	return len(m.input)
}

// Output returns a copy of the output queue, in emission order.
func (m *Lmc) Output() []int {
	return slices.Clone(m.output)
}

// fetch reads the instruction word at the program counter. A counter
// outside the store is an overflow, not a wrap: running past cell 99
// fails here.
func (m *Lmc) fetch() (code Code, err error) {
	if m.Counter < 0 || m.Counter >= MemorySize {
		err = errors.Join(ErrMemory, ErrCounter(m.Counter))
		return
	}

	word, err := m.Memory.Read(m.Counter)
	code = Code(word)
	return
}

// Step executes a single fetch-decode-execute cycle.
func (m *Lmc) Step() (err error) {
	if m.Halted {
		return ErrHalted
	}

	code, err := m.fetch()
	if err != nil {
		return
	}

	err = m.Execute(code)
	if err != nil {
		return
	}

	m.Ticks += 1

	return
}

// Execute executes a single decoded instruction. On error the machine
// state is left exactly as it was at the point of failure: the counter
// only advances when the instruction completes.
func (m *Lmc) Execute(code Code) (err error) {
	if m.Verbose {
		log.Printf("%02d: %v", m.Counter, code)
	}

	next := m.Counter + 1

	switch code.Op() {
	case OP_HLT:
		m.Halted = true
		return
	case OP_ADD:
		var value int
		value, err = m.Memory.Read(code.Operand())
		if err != nil {
			return
		}
		sum := m.Accumulator + value
		m.Positive = sum <= WordMax
		m.Accumulator = sum % (WordMax + 1)
	case OP_SUB:
		var value int
		value, err = m.Memory.Read(code.Operand())
		if err != nil {
			return
		}
		diff := m.Accumulator - value
		m.Positive = diff >= 0
		if diff < 0 {
			diff += WordMax + 1
		}
		m.Accumulator = diff
	case OP_STA:
		err = m.Memory.Write(code.Operand(), m.Accumulator)
		if err != nil {
			return
		}
	case OP_LDA:
		var value int
		value, err = m.Memory.Read(code.Operand())
		if err != nil {
			return
		}
		m.Accumulator = value
	case OP_BRA:
		next = code.Operand()
	case OP_BRZ:
		if m.Accumulator == 0 {
			next = code.Operand()
		}
	case OP_BRP:
		if m.Positive {
			next = code.Operand()
		}
	case OP_IO:
		switch code.Operand() {
		case IO_INP:
			if len(m.input) == 0 {
				return errors.Join(ErrInput, ErrInputEmpty)
			}
			m.Accumulator = m.input[0]
			m.input = m.input[1:]
		case IO_OUT:
			m.output = append(m.output, m.Accumulator)
		default:
			return ErrIllegal(code)
		}
	default:
		// The reserved digit 4. The assembler never emits it, but a
		// directly loaded image can carry it.
		return ErrIllegal(code)
	}

	m.Counter = next

	return
}

// Run executes until the machine halts or an instruction fails, and
// returns the output queue contents. On error the partial output is
// still returned and the machine is inspectable where it stopped.
func (m *Lmc) Run() (output []int, err error) {
	for !m.Halted {
		err = m.Step()
		if err != nil {
			break
		}
	}

	output = m.Output()
	return
}
