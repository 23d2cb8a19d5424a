package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	st := NewSymbolTable()
	st.Define("L1", 202)
	st.Define("in", 7)
	st.Define("not", 4)
	st.Define("pass", 10)
	st.DeclareIfAbsent("LATER")

	tests := []struct {
		expr  string
		value int
		err   error
	}{
		{"205", 205, nil},
		{"007", 7, nil},
		{"+5", 5, nil},
		{"0x10", 0, ErrMalformedExpression("0x10")},
		{"0o7", 0, ErrMalformedExpression("0o7")},
		{"0b1", 0, ErrMalformedExpression("0b1")},
		{"L1+0x1", 0, ErrMalformedExpression("L1+0x1")},
		{"(L1)+(0x3)", 0, ErrMalformedExpression("(L1)+(0x3)")},
		{"-3", -3, nil},
		{"L1", 202, nil},
		{"L1+3", 205, nil},
		{"L1-2", 200, nil},
		{"(L1)+(3)", 205, nil},
		{"L1 + 3", 205, nil},
		{"in", 7, nil},
		{"in+1", 8, nil},
		{"not-1", 3, nil},
		{"pass+3", 13, nil},
		{"L1+007", 209, nil},
		{"(L1)-(2)", 200, nil},
		{"LATER", 0, ErrUnresolvedSymbol("LATER")},
		{"LATER+1", 0, ErrUnresolvedSymbol("LATER")},
		{"NOWHERE", 0, ErrUnresolvedSymbol("NOWHERE")},
		{"L1*2", 0, ErrMalformedExpression("L1*2")},
		{"3+L1", 0, ErrMalformedExpression("3+L1")},
		{"L1+L1", 0, ErrMalformedExpression("L1+L1")},
		{"L1+3+1", 0, ErrMalformedExpression("L1+3+1")},
		{"='5'", 0, ErrMalformedExpression("='5'")},
		{"", 0, ErrMalformedExpression("")},
		{"1.5", 0, ErrMalformedExpression("1.5")},
	}

	for _, tt := range tests {
		value, err := Evaluate(tt.expr, st)
		if tt.err != nil {
			assert.Equal(t, tt.err, err, tt.expr)
			continue
		}
		assert.NoError(t, err, tt.expr)
		assert.Equal(t, tt.value, value, tt.expr)
	}
}
