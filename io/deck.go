package io

import (
	"iter"
	"maps"
)

// Deck is a fixed, replayable sequence of words, read like a card deck.
// Writing to it is not possible.
type Deck struct {
	Data []int

	position int
}

var _ Device = (*Deck)(nil)

// Defines returns an iter of defines for the device.
func (dc *Deck) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind puts the deck back to its first card.
func (dc *Deck) Rewind() {
	dc.position = 0
}

// Receive returns an iterator that yields the remaining cards in order.
func (dc *Deck) Receive() iter.Seq[int] {
	return func(yield func(value int) bool) {
		for dc.position < len(dc.Data) {
			value := dc.Data[dc.position]
			dc.position++
			if !yield(value) {
				return
			}
		}
	}
}

// Send always fails; the deck is read-only.
func (dc *Deck) Send(value int) error {
	return ErrDeviceFull
}
