// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"

	"github.com/lmcsim/lmc/internal"
	"github.com/lmcsim/lmc/io"
	"github.com/lmcsim/lmc/lmc"
)

// Emulator state. Machine + program + IO devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*lmc.Lmc              // Reference to the machine simulation.
	Program  *lmc.Program // Reference to the currently loaded program listing.

	Deck  io.Deck  // Preloaded input card deck.
	Tape  io.Tape  // Textual input/output tape.
	Stage io.Queue // Staging buffer between machine output and tape.

	sent int // Output words already handed to the stage.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Lmc:     lmc.NewLmc(),
		Program: &lmc.Program{},
		Stage:   io.Queue{Capacity: lmc.MemorySize},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Lmc.Defines(),
		emu.Deck.Defines(),
		emu.Tape.Defines(),
		emu.Stage.Defines(),
	)
}

// Reset loads the program image into the machine and gathers the input
// queue from the deck and then from the tape input.
func (emu *Emulator) Reset() (err error) {
	emu.Lmc.Verbose = emu.Verbose

	err = emu.Lmc.LoadProgram(emu.Program.Image())
	if err != nil {
		return
	}

	emu.Deck.Rewind()
	inputs := internal.IterSeqCollect(internal.IterSeqConcat(
		emu.Deck.Receive(),
		emu.Tape.Receive(),
	))

	err = emu.Lmc.SetInput(inputs)
	if err != nil {
		return
	}

	emu.Stage.Rewind()
	emu.sent = 0

	return
}

// LineNo returns the source line number for the instruction the program
// counter is at, or 0 when the counter is outside the program listing.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Lmc.Counter)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Code returns the instruction word the program counter is at.
func (emu *Emulator) Code() lmc.Code {
	op := emu.Program.Debug(emu.Lmc.Counter)
	if op == nil {
		return lmc.Code(0)
	}

	return op.Code
}

// flush moves output words that appeared since the last flush through
// the staging queue to the tape output.
func (emu *Emulator) flush() (err error) {
	output := emu.Lmc.Output()
	for _, value := range output[emu.sent:] {
		err = emu.Stage.Send(value)
		if err != nil {
			return
		}
		emu.sent++
	}

	for value := range emu.Stage.Receive() {
		err = emu.Tape.Send(value)
		if err != nil {
			return
		}
	}

	return
}

// Tick performs a single instruction step of the emulator, draining any
// new output words to the tape. Runtime errors carry the source line.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Lmc.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Lmc.Step()
	if err != nil {
		return
	}

	err = emu.flush()
	if err != nil {
		return
	}

	done = emu.Lmc.Halted

	return
}

// Run ticks the machine until it halts or fails, and returns the output
// queue contents.
func (emu *Emulator) Run() (output []int, err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			break
		}
	}

	output = emu.Lmc.Output()
	return
}
