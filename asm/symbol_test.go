package asm

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	assert := assert.New(t)

	var none Address
	_, ok := none.Get()
	assert.False(ok)
	assert.Equal("", none.String())

	addr := At(205)
	v, ok := addr.Get()
	assert.True(ok)
	assert.Equal(205, v)
	assert.Equal("205", addr.String())
}

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable()
	assert.Equal(0, st.Len())

	st.DeclareIfAbsent("X")
	_, ok := st.Lookup("X")
	assert.False(ok)

	sym, ok := st.Symbol("X")
	assert.True(ok)
	assert.Equal(Symbol{Name: "X"}, sym)

	st.Define("L1", 202)
	st.Define("X", 214)
	st.DeclareIfAbsent("X")

	v, ok := st.Lookup("X")
	assert.True(ok)
	assert.Equal(214, v)

	// Redefinition overwrites.
	st.Define("L1", 300)
	v, ok = st.Lookup("L1")
	assert.True(ok)
	assert.Equal(300, v)

	_, ok = st.Lookup("MISSING")
	assert.False(ok)
	_, ok = st.Symbol("MISSING")
	assert.False(ok)

	assert.Equal(2, st.Len())
	assert.Equal([]Symbol{
		{Name: "X", Address: At(214), Defined: true},
		{Name: "L1", Address: At(300), Defined: true},
	}, slices.Collect(st.Symbols()))
}
