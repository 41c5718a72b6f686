package lmc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzLmc(f *testing.F) {
	f.Add(0, 0)
	f.Add(901, 7)
	f.Add(902, 0)
	f.Add(400, 0)
	f.Add(999, 999)
	f.Add(150, 42)
	f.Add(250, 42)
	f.Add(699, 0)

	f.Fuzz(func(t *testing.T, word int, input int) {
		assert := assert.New(t)

		m := NewLmc()

		err := m.LoadProgram([]int{word})
		if word < 0 || word > WordMax {
			assert.ErrorIs(err, ErrLoad)
			return
		}
		assert.NoError(err)

		err = m.SetInput([]int{input})
		if input < 0 || input > WordMax {
			assert.ErrorIs(err, ErrInput)
			return
		}
		assert.NoError(err)

		// A single step of any word either succeeds or fails with a
		// classified error; the machine never leaves its value ranges.
		err = m.Step()
		if err != nil {
			classified := errors.Is(err, ErrInput) ||
				errors.Is(err, ErrMemory) ||
				errors.Is(err, ErrIllegal(0))
			assert.True(classified, "unclassified error: %v", err)
		}

		assert.GreaterOrEqual(m.Accumulator, 0)
		assert.LessOrEqual(m.Accumulator, WordMax)
		assert.GreaterOrEqual(m.Counter, 0)
		assert.LessOrEqual(m.Counter, MemorySize)
		for _, cell := range m.Memory.Cells() {
			assert.GreaterOrEqual(cell, 0)
			assert.LessOrEqual(cell, WordMax)
		}
	})
}
