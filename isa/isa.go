// Package isa describes the instruction set understood by the assembler:
// mnemonics with their statement class and numeric code, register names and
// branch condition codes.
//
// A table is either the built-in Default() or loaded from YAML:
//
//	opcodes:
//	  STOP:  {class: IS, code: 0}
//	  START: {class: AD, code: 1}
//	registers:
//	  AREG: 1
//	conditions:
//	  LT: 1
package isa

import (
	"maps"
	"strings"
)

// Class is the statement class of a mnemonic.
type Class int

const (
	CLASS_UNKNOWN     = Class(0) // ??
	CLASS_DIRECTIVE   = Class(1) // AD
	CLASS_IMPERATIVE  = Class(2) // IS
	CLASS_DECLARATIVE = Class(3) // DL
)

var className = map[Class]string{
	CLASS_UNKNOWN:     "??",
	CLASS_DIRECTIVE:   "AD",
	CLASS_IMPERATIVE:  "IS",
	CLASS_DECLARATIVE: "DL",
}

func (c Class) String() string {
	name, ok := className[c]
	if !ok {
		return "??"
	}
	return name
}

// ParseClass converts a class mnemonic (AD, IS, DL) to a Class.
func ParseClass(name string) (c Class, err error) {
	for c, n := range className {
		if c != CLASS_UNKNOWN && strings.EqualFold(n, name) {
			return c, nil
		}
	}
	err = ErrClassInvalid(name)
	return
}

// Directive and declarative mnemonics with fixed translator semantics.
const (
	START  = "START"
	END    = "END"
	ORIGIN = "ORIGIN"
	EQU    = "EQU"
	LTORG  = "LTORG"
	DS     = "DS"
	DC     = "DC"
)

// Imperative mnemonics the emulator executes.
const (
	STOP  = "STOP"
	ADD   = "ADD"
	SUB   = "SUB"
	MULT  = "MULT"
	MOVER = "MOVER"
	MOVEM = "MOVEM"
	BC    = "BC"
	DIV   = "DIV"
	READ  = "READ"
	PRINT = "PRINT"
)

var directives = map[string]Class{
	START:  CLASS_DIRECTIVE,
	END:    CLASS_DIRECTIVE,
	ORIGIN: CLASS_DIRECTIVE,
	EQU:    CLASS_DIRECTIVE,
	LTORG:  CLASS_DIRECTIVE,
	DS:     CLASS_DECLARATIVE,
	DC:     CLASS_DECLARATIVE,
}

// Opcode is a mnemonic's class and numeric code.
type Opcode struct {
	Class Class `yaml:"class"`
	Code  int   `yaml:"code"`
}

// Table maps names to their codes. Keys are upper case.
type Table struct {
	Opcodes    map[string]Opcode `yaml:"opcodes"`
	Registers  map[string]int    `yaml:"registers"`
	Conditions map[string]int    `yaml:"conditions"`
}

var defaultOpcodes = map[string]Opcode{
	STOP:  {CLASS_IMPERATIVE, 0},
	ADD:   {CLASS_IMPERATIVE, 1},
	SUB:   {CLASS_IMPERATIVE, 2},
	MULT:  {CLASS_IMPERATIVE, 3},
	MOVER: {CLASS_IMPERATIVE, 4},
	MOVEM: {CLASS_IMPERATIVE, 5},
	BC:    {CLASS_IMPERATIVE, 6},
	DIV:   {CLASS_IMPERATIVE, 7},
	READ:  {CLASS_IMPERATIVE, 8},
	PRINT: {CLASS_IMPERATIVE, 9},

	START:  {CLASS_DIRECTIVE, 1},
	END:    {CLASS_DIRECTIVE, 2},
	ORIGIN: {CLASS_DIRECTIVE, 3},
	EQU:    {CLASS_DIRECTIVE, 4},
	LTORG:  {CLASS_DIRECTIVE, 5},

	DS: {CLASS_DECLARATIVE, 1},
	DC: {CLASS_DECLARATIVE, 2},
}

var defaultRegisters = map[string]int{
	"AREG": 1,
	"BREG": 2,
	"CREG": 3,
	"DREG": 4,
}

var defaultConditions = map[string]int{
	"LT":  1,
	"LE":  2,
	"EQ":  3,
	"GT":  4,
	"GE":  5,
	"ANY": 6,
}

// Default returns a fresh copy of the built-in instruction set.
func Default() *Table {
	return &Table{
		Opcodes:    maps.Clone(defaultOpcodes),
		Registers:  maps.Clone(defaultRegisters),
		Conditions: maps.Clone(defaultConditions),
	}
}

// Opcode looks up a mnemonic, ignoring case.
func (t *Table) Opcode(name string) (op Opcode, ok bool) {
	op, ok = t.Opcodes[strings.ToUpper(name)]
	return
}

// Register looks up a register number, ignoring case.
func (t *Table) Register(name string) (n int, ok bool) {
	n, ok = t.Registers[strings.ToUpper(name)]
	return
}

// Condition looks up a branch condition code, ignoring case.
func (t *Table) Condition(name string) (n int, ok bool) {
	n, ok = t.Conditions[strings.ToUpper(name)]
	return
}

// Mnemonic returns the mnemonic of an imperative opcode.
func (t *Table) Mnemonic(code int) (name string, ok bool) {
	for name, op := range t.Opcodes {
		if op.Class == CLASS_IMPERATIVE && op.Code == code {
			return name, true
		}
	}
	return
}
