package filter

import (
	"slices"
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// AndFilter accepts a declaration when every child accepts it.
// With no children it accepts everything.
// Children are evaluated in order and evaluation stops at the first rejection.
type AndFilter struct {
	children []Predicate
}

// NewAnd returns an AND chain of the given predicates.
func NewAnd(children ...Predicate) (*AndFilter, error) {
	if err := validateChildren(children); err != nil {
		return nil, err
	}

	return &AndFilter{children: slices.Clone(children)}, nil
}

// With returns a new chain with child appended.
func (f *AndFilter) With(child Predicate) (*AndFilter, error) {
	return NewAnd(append(slices.Clone(f.children), child)...)
}

// Without returns a new chain without the given predicate instance.
func (f *AndFilter) Without(child Predicate) *AndFilter {
	return &AndFilter{children: removePredicate(f.children, child)}
}

// Children returns the chained predicates.
func (f *AndFilter) Children() []Predicate {
	return slices.Clone(f.children)
}

// Accept implements Predicate.
func (f *AndFilter) Accept(decl *declaration.Declaration, key string) bool {
	for _, child := range f.children {
		if !child.Accept(decl, key) {
			return false
		}
	}

	return true
}

func (f *AndFilter) String() string {
	return joinPredicates(f.children, " | ", "*")
}

// OrFilter accepts a declaration when at least one child accepts it.
// With no children it rejects everything.
// Children are evaluated in order and evaluation stops at the first acceptance.
type OrFilter struct {
	children []Predicate
}

// NewOr returns an OR chain of the given predicates.
func NewOr(children ...Predicate) (*OrFilter, error) {
	if err := validateChildren(children); err != nil {
		return nil, err
	}

	return &OrFilter{children: slices.Clone(children)}, nil
}

// With returns a new chain with child appended.
func (f *OrFilter) With(child Predicate) (*OrFilter, error) {
	return NewOr(append(slices.Clone(f.children), child)...)
}

// Without returns a new chain without the given predicate instance.
func (f *OrFilter) Without(child Predicate) *OrFilter {
	return &OrFilter{children: removePredicate(f.children, child)}
}

// Children returns the chained predicates.
func (f *OrFilter) Children() []Predicate {
	return slices.Clone(f.children)
}

// Accept implements Predicate.
func (f *OrFilter) Accept(decl *declaration.Declaration, key string) bool {
	for _, child := range f.children {
		if child.Accept(decl, key) {
			return true
		}
	}

	return false
}

func (f *OrFilter) String() string {
	return joinPredicates(f.children, " or ", "!*")
}

// NotFilter inverts its child.
type NotFilter struct {
	child Predicate
}

// NewNot returns the negation of child.
func NewNot(child Predicate) (*NotFilter, error) {
	if IsNil(child) {
		return nil, NewConfigurationError("negated filter is nil")
	}

	return &NotFilter{child: child}, nil
}

// Accept implements Predicate.
func (f *NotFilter) Accept(decl *declaration.Declaration, key string) bool {
	if decl == nil {
		return false
	}

	return !f.child.Accept(decl, key)
}

func (f *NotFilter) String() string {
	return "!" + f.child.String()
}

func removePredicate(children []Predicate, child Predicate) []Predicate {
	return slices.DeleteFunc(slices.Clone(children), func(p Predicate) bool {
		return Same(p, child)
	})
}

func joinPredicates(children []Predicate, sep, empty string) string {
	if len(children) == 0 {
		return empty
	}

	strs := make([]string, len(children))
	for i, child := range children {
		strs[i] = child.String()
	}

	return "(" + strings.Join(strs, sep) + ")"
}
