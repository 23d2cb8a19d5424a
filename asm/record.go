package asm

import (
	"fmt"
	"strings"

	"github.com/ezrec/twopass/isa"
)

// Operand is a tagged reference in an intermediate code record. It is one of
// Register, SymbolRef, LiteralRef, Constant or Condition.
type Operand interface {
	fmt.Stringer
	operand()
}

// Register is a register number.
type Register struct{ N int }

// SymbolRef names a symbol, resolved in pass 2.
type SymbolRef struct{ Name string }

// LiteralRef is a 1-based literal table index.
type LiteralRef struct{ Index int }

// Constant is an immediate value.
type Constant struct{ Value int }

// Condition is a branch condition.
type Condition struct {
	Name string
	Code int
}

func (Register) operand()   {}
func (SymbolRef) operand()  {}
func (LiteralRef) operand() {}
func (Constant) operand()   {}
func (Condition) operand()  {}

func (op Register) String() string   { return fmt.Sprintf("(REG,%d)", op.N) }
func (op SymbolRef) String() string  { return fmt.Sprintf("(S,%s)", op.Name) }
func (op LiteralRef) String() string { return fmt.Sprintf("(L,%d)", op.Index) }
func (op Constant) String() string   { return fmt.Sprintf("(C,%d)", op.Value) }
func (op Condition) String() string  { return fmt.Sprintf("(COND,%s)", op.Name) }

// Record is one intermediate code entry.
type Record struct {
	LineNo   int       // Source line number.
	Location Address   // Absent for directives that occupy no memory.
	Class    isa.Class // Statement class.
	Code     int       // Class specific opcode.
	Mnemonic string    // Upper case mnemonic, known or not.
	Operands []Operand // Tagged operand references.
}

// String renders the record head and operands, e.g. "(IS,4) (REG,1) (L,1)".
func (rec Record) String() string {
	var parts []string
	if rec.Class == isa.CLASS_UNKNOWN {
		parts = append(parts, fmt.Sprintf("(%v,%s)", rec.Class, rec.Mnemonic))
	} else {
		parts = append(parts, fmt.Sprintf("(%v,%d)", rec.Class, rec.Code))
	}
	for _, op := range rec.Operands {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}
