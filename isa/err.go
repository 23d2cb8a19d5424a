package isa

import (
	"errors"

	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrTableEmpty = errors.New(f("instruction table has no opcodes"))
)

type ErrClassInvalid string

func (err ErrClassInvalid) Error() string {
	return f("'%v' is not a statement class", string(err))
}

// ErrDirectiveInvalid reports a directive the translator has no semantics for.
type ErrDirectiveInvalid string

func (err ErrDirectiveInvalid) Error() string {
	return f("directive %v unsupported", string(err))
}

type ErrCodeDuplicate struct {
	Name  string
	Other string
	Code  int
}

func (err ErrCodeDuplicate) Error() string {
	return f("%v and %v share imperative code %v", err.Name, err.Other, err.Code)
}
