package asm

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ezrec/twopass/isa"
)

// Statement is a tokenized source line.
type Statement struct {
	Label    string   // Optional label, without any ':' marker.
	Mnemonic string   // Upper case. Empty on a label-only line.
	Operands []string // Operand tokens, in order.
}

var reSeparator = regexp.MustCompile(`[\s,]+`)

// Tokenize splits a source line into label, mnemonic and operands.
// Returns false for blank and comment-only lines.
func Tokenize(line string, table *isa.Table) (stmt Statement, ok bool) {
	line, _, _ = strings.Cut(line, ";")
	line = strings.TrimSpace(line)

	words := slices.DeleteFunc(reSeparator.Split(line, -1), func(a string) bool { return len(a) == 0 })
	if len(words) == 0 {
		return
	}

	first := words[0]
	switch {
	case strings.HasSuffix(first, ":"):
		stmt.Label = strings.TrimSuffix(first, ":")
		words = words[1:]
	case len(words) > 1 && !known(first, table) && isMnemonic(words[1], table):
		stmt.Label = first
		words = words[1:]
	}

	if len(words) > 0 {
		stmt.Mnemonic = strings.ToUpper(words[0])
		stmt.Operands = words[1:]
	}

	if len(stmt.Operands) == 0 {
		stmt.Operands = nil
	}

	ok = len(stmt.Label) > 0 || len(stmt.Mnemonic) > 0

	return
}

func isMnemonic(word string, table *isa.Table) bool {
	_, ok := table.Opcode(word)
	return ok
}

// known reports if a word is a mnemonic, a register or a literal.
func known(word string, table *isa.Table) bool {
	if isMnemonic(word, table) || isLiteral(word) {
		return true
	}
	_, ok := table.Register(word)
	return ok
}
