package pipeline

import (
	"iter"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/filter"
)

// Declarations is a pipeline of declarations keyed by qualified name.
type Declarations = Pipeline[string, *declaration.Declaration]

// NewDeclarations returns a Lazy pipeline applying the given predicates to upstream.
func NewDeclarations(upstream iter.Seq2[string, *declaration.Declaration], predicates ...filter.Predicate) (*Declarations, error) {
	filters := make([]Filter[string, *declaration.Declaration], 0, len(predicates))

	for i, predicate := range predicates {
		if filter.IsNil(predicate) {
			return nil, NewConfigurationError("predicate at position %d is nil", i)
		}

		filters = append(filters, predicate)
	}

	return New(upstream, filters...)
}
