package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
)

// Tape provides sequential word I/O over text streams. It wraps an
// io.Reader carrying whitespace-separated decimal words for input, and
// an io.Writer receiving one decimal word per line for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanned io.Reader
	scanner *bufio.Scanner
}

var _ Device = (*Tape)(nil)

// Defines returns an iter of defines for the device.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive returns an iterator that yields words from the input stream.
// It stops at end of input or at the first token that is not a word.
func (tc *Tape) Receive() iter.Seq[int] {
	return func(yield func(value int) bool) {
		if tc.Input == nil {
			return
		}
		if tc.scanner == nil || tc.scanned != tc.Input {
			tc.scanner = bufio.NewScanner(tc.Input)
			tc.scanner.Split(bufio.ScanWords)
			tc.scanned = tc.Input
		}
		for tc.scanner.Scan() {
			value, err := strconv.Atoi(tc.scanner.Text())
			if err != nil {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Send writes a word to the output stream, one word per line.
func (tc *Tape) Send(value int) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
