package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLiteral(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		text  string
		value int
		ok    bool
	}{
		{"='5'", 5, true},
		{"=5", 5, true},
		{"='-12'", -12, true},
		{"= ' 7 '", 7, true},
		{"='A'", 0, false},
		{"=X", 0, false},
		{"='5", 0, false},
	}

	for _, tt := range tests {
		value, ok := parseLiteral(tt.text)
		assert.Equal(tt.ok, ok, tt.text)
		if ok {
			assert.Equal(tt.value, value, tt.text)
		}
	}
}

func TestLiteralTable_Intern(t *testing.T) {
	assert := assert.New(t)

	lt := NewLiteralTable()

	assert.Equal(1, lt.Intern("='5'"))
	assert.Equal(2, lt.Intern("='2'"))
	assert.Equal(1, lt.Intern("='5'"))

	// Same value, different text.
	assert.Equal(3, lt.Intern("=5"))
	assert.Equal(4, lt.Intern("='A'"))

	lit, ok := lt.Literal(4)
	assert.True(ok)
	assert.False(lit.Parsed)
	assert.Equal("='A'", lit.ValueString())

	lit, ok = lt.Literal(3)
	assert.True(ok)
	assert.Equal(Literal{Text: "=5", Value: 5, Parsed: true}, lit)

	_, ok = lt.Literal(0)
	assert.False(ok)
	_, ok = lt.Literal(5)
	assert.False(ok)

	assert.Equal(4, lt.Len())
}

func TestLiteralTable_Flush(t *testing.T) {
	assert := assert.New(t)

	lt := NewLiteralTable()
	assert.Equal([]int{0}, lt.Pools())

	lt.Intern("='5'")
	lt.Intern("='2'")
	assert.Equal(207, lt.Flush(205))
	assert.Equal([]int{0, 2}, lt.Pools())

	// Already pooled literal keeps its address.
	assert.Equal(2, lt.Intern("='2'"))
	assert.Equal(3, lt.Intern("='1'"))
	assert.Equal(211, lt.Flush(210))

	// Empty pool.
	assert.Equal(220, lt.Flush(220))
	assert.Equal([]int{0, 2, 3, 3}, lt.Pools())

	var got []Literal
	for _, lit := range lt.Literals() {
		got = append(got, lit)
	}
	assert.Equal([]Literal{
		{Text: "='5'", Value: 5, Parsed: true, Address: At(205), Pool: 0},
		{Text: "='2'", Value: 2, Parsed: true, Address: At(206), Pool: 0},
		{Text: "='1'", Value: 1, Parsed: true, Address: At(210), Pool: 1},
	}, got)
}

func TestLiteralTable_PoolsCopy(t *testing.T) {
	assert := assert.New(t)

	lt := NewLiteralTable()
	pools := lt.Pools()
	pools[0] = 99

	assert.Equal([]int{0}, lt.Pools())
}
