package renderer

import (
	"github.com/ezrec/twopass/translate"
)

var f = translate.From

type ErrFormatInvalid string

func (err ErrFormatInvalid) Error() string {
	return f("invalid format: %v", string(err))
}
