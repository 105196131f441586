package filter

import (
	"reflect"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// Predicate decides whether a declaration is accepted.
//
// Accept must be pure and total: it returns false, never panics, for any declaration kind
// it cannot judge. key is the position label threaded through a pipeline; most predicates ignore it.
type Predicate interface {
	Accept(decl *declaration.Declaration, key string) bool
	String() string
}

// Mode selects how a set of required values is satisfied.
type Mode int

const (
	// ModeAll requires every value to be present.
	ModeAll Mode = iota
	// ModeAny requires at least one value to be present.
	ModeAny
)

func (mode Mode) String() string {
	if mode == ModeAny {
		return "any"
	}

	return "all"
}

// FuncFilter adapts a plain function to the Predicate interface.
type FuncFilter struct {
	fn   func(decl *declaration.Declaration, key string) bool
	name string
}

// NewFuncFilter returns a predicate calling fn. name is used for String.
func NewFuncFilter(name string, fn func(decl *declaration.Declaration, key string) bool) (*FuncFilter, error) {
	if fn == nil {
		return nil, NewConfigurationError("function filter %q has no function", name)
	}

	return &FuncFilter{name: name, fn: fn}, nil
}

func (f *FuncFilter) Accept(decl *declaration.Declaration, key string) bool {
	if decl == nil {
		return false
	}

	return f.fn(decl, key)
}

func (f *FuncFilter) String() string {
	return f.name
}

// IsNil reports whether p is nil or a typed nil pointer.
func IsNil(p Predicate) bool {
	if p == nil {
		return true
	}

	val := reflect.ValueOf(p)

	return val.Kind() == reflect.Pointer && val.IsNil()
}

// Same reports whether a and b are the same predicate instance.
// Values of non-comparable dynamic types are never the same.
func Same(a, b Predicate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	typ := reflect.TypeOf(a)
	if typ != reflect.TypeOf(b) || !typ.Comparable() {
		return false
	}

	return a == b
}

func validateChildren(children []Predicate) error {
	for i, child := range children {
		if IsNil(child) {
			return NewConfigurationError("filter at position %d is nil", i)
		}
	}

	return nil
}
