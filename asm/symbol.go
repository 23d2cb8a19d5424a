package asm

import (
	"iter"
	"strconv"
)

// Address is an optional memory address.
type Address struct {
	Value int
	Ok    bool
}

// At returns a present address.
func At(value int) Address {
	return Address{Value: value, Ok: true}
}

// Get returns the address value, and whether it is present.
func (a Address) Get() (int, bool) {
	return a.Value, a.Ok
}

// String is blank for an absent address.
func (a Address) String() string {
	if !a.Ok {
		return ""
	}
	return strconv.Itoa(a.Value)
}

// Symbol is an identifier seen as a label, an EQU target, or an operand.
type Symbol struct {
	Name    string
	Address Address
	Defined bool
}

// SymbolTable holds symbols in order of first mention.
type SymbolTable struct {
	symbol []Symbol
	index  map[string]int
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int, 16)}
}

// DeclareIfAbsent adds an undefined symbol unless it is already known.
func (st *SymbolTable) DeclareIfAbsent(name string) {
	if _, ok := st.index[name]; ok {
		return
	}
	st.index[name] = len(st.symbol)
	st.symbol = append(st.symbol, Symbol{Name: name})
}

// Define sets the address of a symbol. Redefinition overwrites.
func (st *SymbolTable) Define(name string, address int) {
	st.DeclareIfAbsent(name)
	sym := &st.symbol[st.index[name]]
	sym.Address = At(address)
	sym.Defined = true
}

// Lookup returns the address of a defined symbol.
func (st *SymbolTable) Lookup(name string) (address int, ok bool) {
	n, ok := st.index[name]
	if !ok {
		return
	}
	sym := st.symbol[n]
	if !sym.Defined {
		return 0, false
	}
	return sym.Address.Get()
}

// Symbol returns a copy of the named entry.
func (st *SymbolTable) Symbol(name string) (sym Symbol, ok bool) {
	n, ok := st.index[name]
	if ok {
		sym = st.symbol[n]
	}
	return
}

// Len is the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbol)
}

// Symbols iterates over the table in order of first mention.
func (st *SymbolTable) Symbols() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for _, sym := range st.symbol {
			if !yield(sym) {
				return
			}
		}
	}
}
