package lmc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()

	image := []int{901, 350, 901, 150, 902, 0}
	err := m.LoadProgram(image)
	assert.NoError(err)

	cells := m.Memory.Cells()
	assert.Equal(image, cells[:len(image)])
	for _, cell := range cells[len(image):] {
		assert.Equal(0, cell)
	}

	assert.Equal(0, m.Accumulator)
	assert.Equal(0, m.Counter)
	assert.True(m.Positive)
	assert.False(m.Halted)
	assert.Empty(m.Output())
}

func TestLoadProgramErrors(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()

	tooLong := make([]int, MemorySize+1)
	err := m.LoadProgram(tooLong)
	assert.ErrorIs(err, ErrLoad)
	assert.ErrorIs(err, ErrProgramTooLong)

	err = m.LoadProgram([]int{1000})
	assert.ErrorIs(err, ErrLoad)
	assert.ErrorIs(err, ErrWord(0))

	err = m.LoadProgram([]int{-1})
	assert.ErrorIs(err, ErrLoad)

	// A rejected load changes nothing.
	assert.NoError(m.LoadProgram([]int{902, 0}))
	_, err = m.Run()
	assert.NoError(err)
	err = m.LoadProgram([]int{1000})
	assert.ErrorIs(err, ErrLoad)
	assert.Equal([]int{0}, m.Output())
	assert.True(m.Halted)
}

func TestSetInput(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()

	err := m.SetInput([]int{0, 999, 5})
	assert.NoError(err)
	assert.Equal(3, m.Pending())

	err = m.SetInput([]int{-1})
	assert.ErrorIs(err, ErrInput)
	assert.ErrorIs(err, ErrWord(0))

	err = m.SetInput([]int{1000})
	assert.ErrorIs(err, ErrInput)
}

func TestHalt(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	assert.NoError(m.LoadProgram([]int{int(CODE_HLT)}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Empty(output)
	assert.True(m.Halted)
	assert.Equal(0, m.Counter)

	// Stepping a halted machine is an error, not a spin.
	err = m.Step()
	assert.ErrorIs(err, ErrHalted)
}

func TestAddOverflow(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// LDA 4 / ADD 5 / HLT, data 999 at 4 and 5 at 5.
	assert.NoError(m.LoadProgram([]int{504, 105, 0, 0, 999, 5}))

	_, err := m.Run()
	assert.NoError(err)
	assert.Equal(4, m.Accumulator)
	assert.False(m.Positive)
}

func TestSubUnderflow(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// SUB 3 / HLT, data 1 at 3. Accumulator starts at 0.
	assert.NoError(m.LoadProgram([]int{203, 0, 0, 1}))

	_, err := m.Run()
	assert.NoError(err)
	assert.Equal(999, m.Accumulator)
	assert.False(m.Positive)
}

func TestArithmeticFlag(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// A zero result is still non-negative.
	// LDA 4 / SUB 4 / HLT, data 7 at 4.
	assert.NoError(m.LoadProgram([]int{504, 204, 0, 0, 7}))

	_, err := m.Run()
	assert.NoError(err)
	assert.Equal(0, m.Accumulator)
	assert.True(m.Positive)
}

func TestStoreLoadKeepFlag(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// SUB 5 / STA 6 / LDA 5 / HLT, data 1 at 5.
	assert.NoError(m.LoadProgram([]int{205, 306, 505, 0, 0, 1}))

	_, err := m.Run()
	assert.NoError(err)
	// STA and LDA never alter the flag set by the underflow.
	assert.False(m.Positive)
	assert.Equal(1, m.Accumulator)

	cell, err := m.Memory.Read(6)
	assert.NoError(err)
	assert.Equal(999, cell)
}

func TestInputEmpty(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	assert.NoError(m.LoadProgram([]int{int(CODE_INP)}))

	err := m.Step()
	assert.ErrorIs(err, ErrInput)
	assert.ErrorIs(err, ErrInputEmpty)

	// The counter did not advance and the machine did not halt.
	assert.Equal(0, m.Counter)
	assert.False(m.Halted)
}

func TestInputOutputOrder(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// INP / OUT / INP / OUT / HLT.
	assert.NoError(m.LoadProgram([]int{901, 902, 901, 902, 0}))
	assert.NoError(m.SetInput([]int{7, 11}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{7, 11}, output)
	assert.Equal(0, m.Pending())
}

func TestIllegalInstruction(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code int
	}){
		{"reserved low", 400},
		{"reserved mid", 450},
		{"reserved high", 499},
		{"io subcode zero", 900},
		{"io subcode high", 903},
		{"io subcode max", 999},
	}

	for _, entry := range table {
		m := NewLmc()
		assert.NoError(m.LoadProgram([]int{entry.code}), entry.name)

		err := m.Step()
		assert.ErrorIs(err, ErrIllegal(0), entry.name)
		assert.Equal(0, m.Counter, entry.name)
		assert.False(m.Halted, entry.name)
	}
}

func TestCounterOverflow(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()

	// OUT in every cell: nothing ever halts, so the counter walks off
	// the end of the store instead of wrapping to 0.
	image := make([]int, MemorySize)
	for n := range image {
		image[n] = int(CODE_OUT)
	}
	assert.NoError(m.LoadProgram(image))

	output, err := m.Run()
	assert.ErrorIs(err, ErrMemory)
	assert.ErrorIs(err, ErrCounter(0))
	assert.Equal(MemorySize, m.Counter)
	assert.Equal(MemorySize, len(output))
}

func TestBranches(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// BRA 2 / HLT / BRZ 4 / HLT / OUT / HLT.
	assert.NoError(m.LoadProgram([]int{602, 0, 704, 0, 902, 0}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{0}, output)
	assert.Equal(5, m.Counter)
}

func TestBranchPositiveInitial(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// The flag is true at load, before any arithmetic: BRP 2 / HLT / OUT / HLT.
	assert.NoError(m.LoadProgram([]int{802, 0, 902, 0}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{0}, output)
}

func TestBranchZeroNotTaken(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	// INP / BRZ 3 / OUT / HLT with a non-zero input.
	assert.NoError(m.LoadProgram([]int{901, 703, 902, 0}))
	assert.NoError(m.SetInput([]int{5}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{5}, output)
}

func TestEndToEnd(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	program := []string{
		"INP",
		"STA 50",
		"INP",
		"ADD 50",
		"OUT",
		"HLT",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(err)

	image := prog.Image()
	assert.Equal(6, len(image))

	m := NewLmc()
	require.NoError(m.LoadProgram(image))

	// Assemble then load round-trips.
	assert.Equal(image, m.Memory.Cells()[:len(image)])

	require.NoError(m.SetInput([]int{5, 3}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{8}, output)
}

func TestDecrementLoop(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	program := []string{
		"INP",
		"loop OUT",
		"SUB one",
		"BRZ done",
		"BRA loop",
		"done HLT",
		"one 1",
	}

	prog, err := parse(t, program...)
	require.NoError(err)

	m := NewLmc()
	require.NoError(m.LoadProgram(prog.Image()))
	require.NoError(m.SetInput([]int{2}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{2, 1}, output)
	assert.True(m.Halted)
}

func TestDecrementLoopBrp(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// BRP is still taken when the subtraction lands exactly on zero, so
	// the loop emits the zero before the flag finally clears.
	program := []string{
		"INP",
		"loop OUT",
		"SUB one",
		"BRP loop",
		"HLT",
		"one 1",
	}

	prog, err := parse(t, program...)
	require.NoError(err)

	m := NewLmc()
	require.NoError(m.LoadProgram(prog.Image()))
	require.NoError(m.SetInput([]int{2}))

	output, err := m.Run()
	assert.NoError(err)
	assert.Equal([]int{2, 1, 0}, output)
	assert.True(m.Halted)
}

func TestMachineString(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	text := m.String()
	assert.Contains(text, "acc")
	assert.Contains(text, "pc")
	assert.Contains(text, "pos")
}

func TestMachineDefines(t *testing.T) {
	assert := assert.New(t)

	m := NewLmc()
	defines := map[string]string{}
	for key, value := range m.Defines() {
		defines[key] = value
	}

	assert.Equal("100", defines["MEMORY_SIZE"])
	assert.Equal("999", defines["WORD_MAX"])
	assert.Equal("901", defines["CODE_INP"])
	assert.Equal("902", defines["CODE_OUT"])
}

func TestInstancesIndependent(t *testing.T) {
	assert := assert.New(t)

	a := NewLmc()
	b := NewLmc()

	assert.NoError(a.LoadProgram([]int{901, 902, 0}))
	assert.NoError(b.LoadProgram([]int{0}))
	assert.NoError(a.SetInput([]int{42}))

	_, err := b.Run()
	assert.NoError(err)

	output, err := a.Run()
	assert.NoError(err)
	assert.Equal([]int{42}, output)
	assert.Empty(b.Output())
}
