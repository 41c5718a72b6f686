// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package lmc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%v", MemorySize),
	"WORD_MAX":    fmt.Sprintf("%v", WordMax),
}

// exprRe matches compile-time $(...) expressions.
var exprRe = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a two-pass assembler for the LMC instruction set.
// Pass 1 binds labels to instruction slots, pass 2 encodes; forward
// references therefore resolve without backpatching.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to memory addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word. Words are decimal only:
// a listing like 'STA 050' must not go octal.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value32, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(value32)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// line is a tokenized source line that consumes one instruction slot.
type line struct {
	LineNo int
	Text   string
	Words  []string
}

// parseLine tokenizes a single source line: comment stripped, $()
// expressions evaluated, equates substituted, directives consumed.
// Lines that produce no words consume no instruction slot.
func (asm *Assembler) parseLine(text string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// A // marker and everything after it is discarded.
	text, _, _ = strings.Cut(text, "//")
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	// Do $() evaluations
	text = exprRe.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(text)

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// isLabel reports whether the leading token of a line is a label: not a
// recognized mnemonic and not purely numeric. A trailing ':' is accepted
// and stripped.
func (asm *Assembler) isLabel(word string) (label string, ok bool) {
	label = strings.TrimSuffix(word, ":")

	mnemonic := strings.ToUpper(label)
	if _, found := fixedMap[mnemonic]; found {
		return
	}
	if _, found := mnemonicMap[mnemonic]; found {
		return
	}
	if _, err := asm.valueOf(label); err == nil {
		return
	}

	ok = true
	return
}

// operandOf resolves an operand token: a label from the label table, or
// a literal address in [0, MemorySize-1].
func (asm *Assembler) operandOf(word string) (operand int, err error) {
	operand, ok := asm.Label[word]
	if ok {
		return
	}

	operand, verr := asm.valueOf(word)
	if verr != nil {
		// Not a number, so it can only be an unbound label.
		err = ErrLabelMissing(word)
		return
	}

	if operand < 0 || operand >= MemorySize {
		err = ErrOperandRange
		return
	}

	return
}

// encode turns the words of one line into an instruction word.
func (asm *Assembler) encode(words []string) (code Code, err error) {
	if len(words) == 0 {
		// A label with nothing after it.
		err = ErrInstructionMissing
		return
	}

	// A numeric leading token is a raw data word, emitted as-is.
	value, verr := asm.valueOf(words[0])
	if verr == nil {
		if len(words) > 1 {
			err = ErrOperandExtra
			return
		}
		if value < 0 || value > WordMax {
			err = ErrWord(value)
			return
		}
		code = Code(value)
		return
	}

	mnemonic := strings.ToUpper(words[0])

	fixed, ok := fixedMap[mnemonic]
	if ok {
		// HLT, INP and OUT are complete words; an operand is forbidden.
		if len(words) > 1 {
			err = ErrOperandExtra
			return
		}
		code = fixed
		return
	}

	op, ok := mnemonicMap[mnemonic]
	if !ok {
		err = ErrMnemonicUnknown(words[0])
		return
	}

	if len(words) < 2 {
		err = ErrOperandMissing
		return
	}
	if len(words) > 2 {
		err = ErrOperandExtra
		return
	}

	operand, err := asm.operandOf(words[1])
	if err != nil {
		return
	}

	code = Code(int(op)*100 + operand)
	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	defer func() {
		if err != nil {
			err = errors.Join(ErrAssembly, err)
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// Tokenization.
	var lines []line
	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var words []string
		words, err = asm.parseLine(text, lineno)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}
		if len(words) == 0 {
			continue
		}

		lines = append(lines, line{LineNo: lineno, Text: text, Words: words})
	}

	// Pass 1: bind labels. Every surviving line consumes exactly one
	// instruction slot, so the slot index is the memory address.
	for n := range lines {
		ln := &lines[n]

		label, ok := asm.isLabel(ln.Words[0])
		if !ok {
			continue
		}

		_, dup := asm.Label[label]
		if dup {
			err = &ErrSyntax{LineNo: ln.LineNo, Line: ln.Text, Err: ErrLabelDuplicate}
			return
		}
		asm.Label[label] = n
		ln.Words = ln.Words[1:]
	}

	if len(lines) > MemorySize {
		err = ErrProgramTooLong
		return
	}

	// Pass 2: encode.
	for n, ln := range lines {
		var code Code
		code, err = asm.encode(ln.Words)
		if err != nil {
			err = &ErrSyntax{LineNo: ln.LineNo, Line: ln.Text, Err: err}
			return
		}

		asm.Opcode = append(asm.Opcode, Opcode{LineNo: ln.LineNo, Addr: n, Words: ln.Words, Code: code})
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
