package filter

import (
	"encoding/json"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
)

// Filter represents a parsed filter query compiled into a predicate.
type Filter struct {
	expr          Expression
	predicate     Predicate
	originalQuery string
}

// Parse parses and compiles a filter query.
// The resolver is used by `extends` terms and may be nil.
func Parse(query string, resolver declaration.Resolver) (*Filter, error) {
	expr, err := NewParser(query).ParseExpression()
	if err != nil {
		return nil, err
	}

	predicate, err := Compile(expr, query, resolver)
	if err != nil {
		return nil, err
	}

	return &Filter{
		expr:          expr,
		predicate:     predicate,
		originalQuery: query,
	}, nil
}

// Accept implements Predicate.
func (f *Filter) Accept(decl *declaration.Declaration, key string) bool {
	return f.predicate.Accept(decl, key)
}

// String returns the original filter query string.
func (f *Filter) String() string {
	return f.originalQuery
}

// Expression returns the parsed AST expression.
func (f *Filter) Expression() Expression {
	return f.expr
}

// Predicate returns the compiled predicate.
func (f *Filter) Predicate() Predicate {
	return f.predicate
}

// IsNegated reports whether the whole query is a negation, such as `!kind=interface`.
func (f *Filter) IsNegated() bool {
	prefix, ok := f.expr.(*PrefixExpression)
	return ok && prefix.Operator == "!"
}

// Filters represents multiple filter queries evaluated with union semantics.
// Multiple filters are always unioned, as opposed to terms within one query joined by `|`,
// which are intersected.
type Filters []*Filter

// ParseFilterQueries parses multiple queries, collecting every parse error.
func ParseFilterQueries(queries []string, resolver declaration.Resolver) (Filters, error) {
	filters := make(Filters, 0, len(queries))

	var errs *errors.MultiError

	for i, query := range queries {
		filter, err := Parse(query, resolver)
		if err != nil {
			errs = errs.Append(&QueryError{Index: i, Query: query, Err: err})
			continue
		}

		filters = append(filters, filter)
	}

	return filters, errs.ErrorOrNil()
}

// Predicate returns a predicate accepting declarations matched by at least one positive query
// and by every negated query. Without positive queries every declaration is a candidate.
func (filters Filters) Predicate() *UnionFilter {
	union := &UnionFilter{}

	for _, filter := range filters {
		if filter.IsNegated() {
			union.exclusions = append(union.exclusions, filter)
			continue
		}

		union.inclusions = append(union.inclusions, filter)
	}

	return union
}

// String returns a JSON array representation of all filter strings.
func (filters Filters) String() string {
	queries := make([]string, len(filters))
	for i, filter := range filters {
		queries[i] = filter.String()
	}

	data, err := json.Marshal(queries)
	if err != nil {
		return "[]"
	}

	return string(data)
}

// UnionFilter combines positive and negated queries.
type UnionFilter struct {
	inclusions []Predicate
	exclusions []Predicate
}

// Accept implements Predicate.
func (f *UnionFilter) Accept(decl *declaration.Declaration, key string) bool {
	if decl == nil {
		return false
	}

	if len(f.inclusions) > 0 && !anyAccepts(f.inclusions, decl, key) {
		return false
	}

	for _, exclusion := range f.exclusions {
		if !exclusion.Accept(decl, key) {
			return false
		}
	}

	return true
}

func (f *UnionFilter) String() string {
	return joinPredicates(append(append([]Predicate{}, f.inclusions...), f.exclusions...), ", ", "*")
}

func anyAccepts(predicates []Predicate, decl *declaration.Declaration, key string) bool {
	for _, predicate := range predicates {
		if predicate.Accept(decl, key) {
			return true
		}
	}

	return false
}

// QueryError ties a parse error to the query it came from.
type QueryError struct {
	Err   error
	Query string
	Index int
}

func (e *QueryError) Error() string {
	return "filter " + e.Query + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
