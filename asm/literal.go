package asm

import (
	"iter"
	"regexp"
	"strconv"
)

// Literal is a constant operand written in place, such as ='5'.
type Literal struct {
	Text    string  // Source text, including the leading '='.
	Value   int     // Numeric value, if Parsed.
	Parsed  bool    // False when the text is not a number; Text stands in for Value.
	Address Address // Assigned when the literal's pool is flushed.
	Pool    int     // Pool the literal was interned into.
}

// ValueString renders the value, or the raw text for unparsable literals.
func (lit Literal) ValueString() string {
	if !lit.Parsed {
		return lit.Text
	}
	return strconv.Itoa(lit.Value)
}

var (
	reLiteralQuoted = regexp.MustCompile(`^=\s*'\s*([-+]?\d+)\s*'\s*$`)
	reLiteralBare   = regexp.MustCompile(`^=\s*([-+]?\d+)\s*$`)
)

// parseLiteral returns the value of ='5' and =5 forms.
func parseLiteral(text string) (value int, ok bool) {
	m := reLiteralQuoted.FindStringSubmatch(text)
	if m == nil {
		m = reLiteralBare.FindStringSubmatch(text)
	}
	if m == nil {
		return
	}
	value, err := strconv.Atoi(m[1])
	ok = err == nil
	return
}

// isLiteral reports if a token is written as a literal.
func isLiteral(token string) bool {
	return len(token) > 0 && token[0] == '='
}

// LiteralTable is the literal table together with its pool table.
//
// Both tables only grow; the pool table holds the index of the first
// literal of each pool, and the last pool is the open one.
type LiteralTable struct {
	literal []Literal
	pool    []int
}

// NewLiteralTable returns a table with the first pool open.
func NewLiteralTable() *LiteralTable {
	return &LiteralTable{pool: []int{0}}
}

// Intern returns the 1-based index of a literal, adding it to the open pool
// if its text has not been seen before.
func (lt *LiteralTable) Intern(text string) (index int) {
	for n, lit := range lt.literal {
		if lit.Text == text {
			return n + 1
		}
	}

	value, ok := parseLiteral(text)
	lt.literal = append(lt.literal, Literal{
		Text:   text,
		Value:  value,
		Parsed: ok,
		Pool:   len(lt.pool) - 1,
	})

	return len(lt.literal)
}

// Flush assigns consecutive addresses from lc to the open pool's
// unaddressed literals, opens a new pool, and returns the advanced lc.
func (lt *LiteralTable) Flush(lc int) int {
	start := lt.pool[len(lt.pool)-1]
	for n := start; n < len(lt.literal); n++ {
		lit := &lt.literal[n]
		if lit.Address.Ok {
			continue
		}
		lit.Address = At(lc)
		lc++
	}

	lt.pool = append(lt.pool, len(lt.literal))

	return lc
}

// Literal returns the entry at a 1-based index.
func (lt *LiteralTable) Literal(index int) (lit Literal, ok bool) {
	if index < 1 || index > len(lt.literal) {
		return
	}
	return lt.literal[index-1], true
}

// Len is the number of literals.
func (lt *LiteralTable) Len() int {
	return len(lt.literal)
}

// Literals iterates over the 1-based index and entry of each literal.
func (lt *LiteralTable) Literals() iter.Seq2[int, Literal] {
	return func(yield func(int, Literal) bool) {
		for n, lit := range lt.literal {
			if !yield(n+1, lit) {
				return
			}
		}
	}
}

// Pools returns the starting literal index (0-based) of every pool.
func (lt *LiteralTable) Pools() []int {
	return append([]int(nil), lt.pool...)
}
