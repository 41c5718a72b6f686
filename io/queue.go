package io

import (
	"iter"
	"maps"
)

// Queue implements a circular buffer of machine words. It operates as a
// FIFO with a fixed capacity and separate read/write positions.
type Queue struct {
	Capacity int // Capacity in words.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int
}

var _ Device = (*Queue)(nil)

// Defines returns an iter of defines for the device.
func (q *Queue) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind resets the queue to empty, resetting indices and
// reinitializing the data buffer.
func (q *Queue) Rewind() {
	q.ReadIndex = 0
	q.WriteIndex = 0
	q.Size = 0
	q.Data = make([]int, q.Capacity)
}

// Receive returns an iterator that yields words from the buffer until
// empty. The buffer wraps around at the capacity boundary.
func (q *Queue) Receive() iter.Seq[int] {
	return func(yield func(value int) bool) {
		for q.Size > 0 {
			word := q.Data[q.ReadIndex]
			q.ReadIndex++
			if q.ReadIndex == q.Capacity {
				q.ReadIndex = 0
			}
			q.Size--
			if !yield(word) {
				return
			}
		}
	}
}

// Send writes a word to the buffer at the current write position.
// Returns ErrDeviceFull if the buffer has reached capacity.
func (q *Queue) Send(value int) (err error) {
	if q.Size >= q.Capacity {
		err = ErrDeviceFull
		return
	}

	if q.Data == nil {
		q.Data = make([]int, q.Capacity)
	}

	q.Data[q.WriteIndex] = value

	q.WriteIndex++
	if q.WriteIndex == q.Capacity {
		q.WriteIndex = 0
	}
	q.Size++

	return
}
