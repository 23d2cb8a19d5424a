package asm

import (
	"errors"

	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrMissingLabel   = errors.New(f("directive requires a label"))
	ErrOperandMissing = errors.New(f("operand missing"))
	ErrOperandExtra   = errors.New(f("excessive operands"))
	ErrPassIncomplete = errors.New(f("pass 1 has not completed"))
	ErrEndMissing     = errors.New(f("END missing, literals flushed at end of input"))
)

// ErrUnresolvedSymbol is a symbol with no defined address where one is required.
type ErrUnresolvedSymbol string

func (err ErrUnresolvedSymbol) Error() string {
	return f("symbol %v undefined", string(err))
}

// ErrMalformedExpression is an operand that matches no expression form.
type ErrMalformedExpression string

func (err ErrMalformedExpression) Error() string {
	return f("'%v' is not a valid expression", string(err))
}

type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("mnemonic %v unknown", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrSyntax locates an error at a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrRecord is a pass 2 failure for a single intermediate code record.
type ErrRecord struct {
	LineNo   int
	Location Address
	Err      error
}

func (err *ErrRecord) Error() string {
	if loc, ok := err.Location.Get(); ok {
		return f("line %d at %v: %v", err.LineNo, loc, err.Err)
	}
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrRecord) Unwrap() error {
	return err.Err
}
