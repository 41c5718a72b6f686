// Package io provides word-level input and output devices for the LMC
// emulator. Devices carry machine words (integers in [0, 999]):
// an in-memory FIFO queue (Queue), a textual tape over reader/writer
// streams (Tape), and a replayable preloaded card deck (Deck).
package io

import (
	"iter"
)

// Device is the interface all emulator devices satisfy. Devices carry
// whole machine words and support sequential reading and writing.
type Device interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Receive returns an iterator that yields words from the device.
	Receive() iter.Seq[int]
	// Send writes a single word to the device.
	Send(value int) error
}
