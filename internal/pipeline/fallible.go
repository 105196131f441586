package pipeline

import (
	"iter"
)

// Item is one element of a fallible upstream: either a keyed value or the error that
// prevented producing it.
type Item[K, V any] struct {
	Key   K
	Value V
	Err   error
}

// SkipErrors adapts a fallible sequence into a pipeline upstream.
// Items carrying an error are reported to onError, when set, and skipped; traversal continues
// with the next item.
func SkipErrors[K, V any](items iter.Seq[Item[K, V]], onError func(item Item[K, V])) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for item := range items {
			if item.Err != nil {
				if onError != nil {
					onError(item)
				}

				continue
			}

			if !yield(item.Key, item.Value) {
				return
			}
		}
	}
}
