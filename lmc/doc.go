// Package lmc implements the Little Man Computer and its assembler.
//
// The machine is a decimal von-Neumann toy: 100 memory cells of three
// decimal digits each, a single accumulator, a program counter, and a
// positive flag set by arithmetic. Programs consume a FIFO input queue
// and append to an output queue; execution is strictly sequential and
// ends on HLT or on the first error.
//
// The assembler compiles the symbolic instruction language (one
// instruction per line, optional leading label, optional trailing //
// comment) into the numeric program image the machine loads, with
// support for equates and compile-time $() expression evaluation.
package lmc
