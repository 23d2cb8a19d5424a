package internal

import (
	"iter"
)

// Concat2 concatenates multiple dual-return iterators into a single iterator sequence.
func Concat2[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Partition drains a value-or-error iterator, separating the values from the
// errors. A non-nil error discards the value paired with it.
func Partition[T any](seq iter.Seq2[T, error]) (values []T, errs []error) {
	for val, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values = append(values, val)
	}
	return
}
