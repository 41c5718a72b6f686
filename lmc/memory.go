package lmc

import (
	"errors"
	"slices"
)

const (
	MemorySize = 100 // Number of memory cells.
	WordMax    = 999 // Largest value a cell, register or input can hold.
)

// Memory is the machine's word store: MemorySize cells, each holding a
// value in [0, WordMax]. The size is fixed for the life of the machine;
// access outside it is an error, never a wrap.
type Memory struct {
	cells [MemorySize]int
}

// Reset zeroes every cell.
func (mem *Memory) Reset() {
	clear(mem.cells[:])
}

// Read returns the value of the cell at addr.
func (mem *Memory) Read(addr int) (value int, err error) {
	if addr < 0 || addr >= MemorySize {
		err = errors.Join(ErrMemory, ErrAddress(addr))
		return
	}

	value = mem.cells[addr]
	return
}

// Write replaces the cell at addr.
func (mem *Memory) Write(addr int, value int) (err error) {
	if addr < 0 || addr >= MemorySize {
		return errors.Join(ErrMemory, ErrAddress(addr))
	}
	if value < 0 || value > WordMax {
		return errors.Join(ErrMemory, ErrWord(value))
	}

	mem.cells[addr] = value
	return
}

// Load zeroes the store and copies image into cells 0..len(image)-1.
// The caller has already range-checked the image.
func (mem *Memory) Load(image []int) {
	clear(mem.cells[:])
	copy(mem.cells[:], image)
}

// Cells returns a copy of the store.
func (mem *Memory) Cells() []int {
	return slices.Clone(mem.cells[:])
}
