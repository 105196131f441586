package pipeline

import (
	"iter"
)

// entry is one upstream item.
type entry[K, V any] struct {
	key   K
	value V
}

// source pulls an upstream sequence one item at a time and keeps every pulled item, so the
// upstream is ranged over at most once no matter how many traversals or derived pipelines read it.
type source[K, V any] struct {
	seq      iter.Seq2[K, V]
	next     func() (K, V, bool)
	stop     func()
	entries  []entry[K, V]
	complete bool
}

func newSource[K, V any](seq iter.Seq2[K, V]) *source[K, V] {
	return &source[K, V]{seq: seq}
}

func newCachedSource[K, V any](entries []entry[K, V]) *source[K, V] {
	return &source[K, V]{entries: entries, complete: true}
}

// at returns the upstream item at position i, pulling the upstream as far as needed.
// It reports false once the upstream is exhausted before i.
func (src *source[K, V]) at(i int) (entry[K, V], bool) {
	for i >= len(src.entries) {
		if src.complete {
			return entry[K, V]{}, false
		}

		src.pull()
	}

	return src.entries[i], true
}

func (src *source[K, V]) pull() {
	if src.next == nil {
		src.next, src.stop = iter.Pull2(src.seq)
	}

	key, value, ok := src.next()
	if !ok {
		src.close()
		return
	}

	src.entries = append(src.entries, entry[K, V]{key: key, value: value})
}

// close stops a partially pulled upstream. Items that were not pulled yet are dropped.
func (src *source[K, V]) close() {
	if src.stop != nil {
		src.stop()
	}

	src.seq, src.next, src.stop = nil, nil, nil
	src.complete = true
}
