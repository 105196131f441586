package pipeline

import (
	"iter"
	"reflect"
	"slices"
)

// State is the materialization state of a Pipeline.
type State int

const (
	// Lazy pipelines have not been traversed to completion yet.
	Lazy State = iota
	// Materialized pipelines hold the accepted items and no longer read the upstream.
	Materialized
)

func (state State) String() string {
	if state == Materialized {
		return "materialized"
	}

	return "lazy"
}

// Filter decides whether an item is accepted. key is the upstream position label of the value.
type Filter[K, V any] interface {
	Accept(value V, key K) bool
}

// FilterFunc is an adaptor to allow the use of ordinary functions as filters.
type FilterFunc[K, V any] func(value V, key K) bool

// Accept implements Filter.
func (fn FilterFunc[K, V]) Accept(value V, key K) bool {
	return fn(value, key)
}

// Pipeline applies an ordered list of filters to an upstream sequence.
// An item is accepted when every filter accepts it; filters are evaluated in order and
// evaluation stops at the first rejection.
type Pipeline[K, V any] struct {
	src      *source[K, V]
	filters  []Filter[K, V]
	accepted []entry[K, V]
	scanned  int // upstream items already run through the filters
	state    State
}

// New returns a Lazy pipeline over upstream.
func New[K, V any](upstream iter.Seq2[K, V], filters ...Filter[K, V]) (*Pipeline[K, V], error) {
	if upstream == nil {
		return nil, NewConfigurationError("upstream sequence is nil")
	}

	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	return &Pipeline[K, V]{
		src:     newSource(upstream),
		filters: slices.Clone(filters),
	}, nil
}

// FromSlice returns a Lazy pipeline over values, keyed by their index.
func FromSlice[V any](values []V, filters ...Filter[int, V]) (*Pipeline[int, V], error) {
	return New(func(yield func(int, V) bool) {
		for i, value := range values {
			if !yield(i, value) {
				return
			}
		}
	}, filters...)
}

// State returns the materialization state.
func (p *Pipeline[K, V]) State() State {
	return p.state
}

// Filters returns the filters in evaluation order.
func (p *Pipeline[K, V]) Filters() []Filter[K, V] {
	return slices.Clone(p.filters)
}

// WithFilter returns a new pipeline that also applies f, first when prepend is set and last otherwise.
// If the receiver is Materialized, the new pipeline reads the receiver's accepted items instead of
// the upstream. The receiver is not modified.
func (p *Pipeline[K, V]) WithFilter(f Filter[K, V], prepend bool) (*Pipeline[K, V], error) {
	if isNilFilter(f) {
		return nil, NewConfigurationError("filter is nil")
	}

	filters := make([]Filter[K, V], 0, len(p.filters)+1)
	if prepend {
		filters = append(append(filters, f), p.filters...)
	} else {
		filters = append(append(filters, p.filters...), f)
	}

	src := p.src
	if p.state == Materialized {
		src = newCachedSource(p.accepted)
	}

	return &Pipeline[K, V]{src: src, filters: filters}, nil
}

// WithoutFilter returns a new pipeline without the given filter instance.
// Filters are compared by identity, so an equally configured but distinct filter is kept.
// The new pipeline reads the shared upstream, which is not pulled again if it was already
// traversed to completion.
func (p *Pipeline[K, V]) WithoutFilter(f Filter[K, V]) *Pipeline[K, V] {
	filters := slices.DeleteFunc(slices.Clone(p.filters), func(existing Filter[K, V]) bool {
		return sameFilter(existing, f)
	})

	return &Pipeline[K, V]{src: p.src, filters: filters}
}

// All returns the accepted items in upstream order.
// Reaching the end of the sequence materializes the pipeline. A traversal that breaks early
// keeps what it has filtered, and the next traversal resumes the upstream where it stopped.
func (p *Pipeline[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; ; i++ {
			for i >= len(p.accepted) {
				if p.state == Materialized {
					return
				}

				p.advance()
			}

			if e := p.accepted[i]; !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Values returns the accepted values in upstream order.
func (p *Pipeline[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range p.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// ToSlice materializes the pipeline and returns the accepted values.
func (p *Pipeline[K, V]) ToSlice() []V {
	p.materialize()

	values := make([]V, len(p.accepted))
	for i, e := range p.accepted {
		values[i] = e.value
	}

	return values
}

// Keys materializes the pipeline and returns the keys of the accepted values.
func (p *Pipeline[K, V]) Keys() []K {
	p.materialize()

	keys := make([]K, len(p.accepted))
	for i, e := range p.accepted {
		keys[i] = e.key
	}

	return keys
}

// Count materializes the pipeline and returns the number of accepted items.
func (p *Pipeline[K, V]) Count() int {
	p.materialize()

	return len(p.accepted)
}

// Close stops a partially pulled upstream. Pipelines sharing the upstream treat the items pulled
// so far as the whole sequence. Closing a Materialized pipeline, or closing twice, is a no-op.
func (p *Pipeline[K, V]) Close() {
	p.src.close()
}

func (p *Pipeline[K, V]) materialize() {
	for p.state != Materialized {
		p.advance()
	}
}

// advance runs the next upstream item through the filters.
func (p *Pipeline[K, V]) advance() {
	e, ok := p.src.at(p.scanned)
	if !ok {
		p.state = Materialized
		return
	}

	p.scanned++

	if p.accept(e.key, e.value) {
		p.accepted = append(p.accepted, e)
	}
}

func (p *Pipeline[K, V]) accept(key K, value V) bool {
	for _, f := range p.filters {
		if !f.Accept(value, key) {
			return false
		}
	}

	return true
}

func validateFilters[K, V any](filters []Filter[K, V]) error {
	for i, f := range filters {
		if isNilFilter(f) {
			return NewConfigurationError("filter at position %d is nil", i)
		}
	}

	return nil
}

func isNilFilter[K, V any](f Filter[K, V]) bool {
	if f == nil {
		return true
	}

	val := reflect.ValueOf(f)

	switch val.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return val.IsNil()
	}

	return false
}

// sameFilter reports whether a and b are the same filter instance.
// Filters of non-comparable dynamic types, such as FilterFunc, are never the same.
func sameFilter[K, V any](a, b Filter[K, V]) bool {
	if a == nil || b == nil {
		return false
	}

	typ := reflect.TypeOf(a)
	if typ != reflect.TypeOf(b) || !typ.Comparable() {
		return false
	}

	return a == b
}
