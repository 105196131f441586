package filter

import (
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
)

// Attribute keys understood by the query language.
const (
	KeyName             = "name"
	KeyNamespace        = "namespace"
	KeyQualifiedName    = "fqn"
	KeyKind             = "kind"
	KeyImplements       = "implements"
	KeyImplementsAny    = "implements-any"
	KeyExtends          = "extends"
	KeyAttribute        = "attribute"
	KeyAttributeAny     = "attribute-any"
	KeyDeepAttribute    = "deep-attribute"
	KeyDeepAttributeAny = "deep-attribute-any"
	KeyIs               = "is"
)

// AllKeys lists every attribute key in the order used by hints.
var AllKeys = []string{
	KeyName, KeyNamespace, KeyQualifiedName, KeyKind,
	KeyImplements, KeyImplementsAny, KeyExtends,
	KeyAttribute, KeyAttributeAny, KeyDeepAttribute, KeyDeepAttributeAny,
	KeyIs,
}

// Flag values accepted by the `is` key.
var flagFilters = map[string]func() *FlagFilter{
	"abstract":     Abstract,
	"final":        Final,
	"instantiable": Instantiable,
	"callable":     Callable,
}

// compiler turns an AST into predicates.
type compiler struct {
	resolver declaration.Resolver
	query    string
}

// Compile converts an expression into a predicate.
// The resolver is used by `extends` terms to walk parent chains and may be nil.
func Compile(expr Expression, query string, resolver declaration.Resolver) (Predicate, error) {
	c := &compiler{query: query, resolver: resolver}

	return c.compile(expr)
}

func (c *compiler) compile(expr Expression) (Predicate, error) {
	switch node := expr.(type) {
	case *PatternExpression:
		return c.orValues(node.Value, node.Position, func(value string) (Predicate, error) {
			return NewPatternFilter(value)
		})
	case *AttributeExpression:
		return c.compileAttribute(node)
	case *PrefixExpression:
		right, err := c.compile(node.Right)
		if err != nil {
			return nil, err
		}

		return NewNot(right)
	case *InfixExpression:
		left, err := c.compile(node.Left)
		if err != nil {
			return nil, err
		}

		right, err := c.compile(node.Right)
		if err != nil {
			return nil, err
		}

		return flattenAnd(left, right)
	}

	return nil, NewParseErrorWithContext("unsupported expression "+expr.String(), 0, c.query, "", ErrorCodeUnknown)
}

func (c *compiler) compileAttribute(node *AttributeExpression) (Predicate, error) {
	values := node.Values()
	if len(values) == 0 {
		return nil, c.valueError(node, "expected a value after '"+node.Key+"='", ErrorCodeMissingValue)
	}

	switch strings.ToLower(node.Key) {
	case KeyName:
		return c.patternValues(node, SubjectName)
	case KeyNamespace:
		return c.patternValues(node, SubjectNamespace)
	case KeyQualifiedName:
		return c.patternValues(node, SubjectQualifiedName)
	case KeyKind:
		kinds := make([]declaration.Kind, 0, len(values))

		for _, value := range values {
			kind, err := declaration.ParseKind(value)
			if err != nil {
				return nil, c.valueError(node, "invalid kind "+value, ErrorCodeInvalidValue)
			}

			kinds = append(kinds, kind)
		}

		return NewKindFilter(kinds...)
	case KeyImplements:
		return NewImplementsFilter(ModeAll, values...)
	case KeyImplementsAny:
		return NewImplementsFilter(ModeAny, values...)
	case KeyExtends:
		return c.orValues(node.Value, node.ValuePosition, func(value string) (Predicate, error) {
			return NewSubclassFilter(value, c.resolver)
		})
	case KeyAttribute:
		return newAttributePredicate(ModeAll, false, values)
	case KeyAttributeAny:
		return newAttributePredicate(ModeAny, false, values)
	case KeyDeepAttribute:
		return newAttributePredicate(ModeAll, true, values)
	case KeyDeepAttributeAny:
		return newAttributePredicate(ModeAny, true, values)
	case KeyIs:
		flags := make([]Predicate, 0, len(values))

		for _, value := range values {
			newFlag, ok := flagFilters[strings.ToLower(value)]
			if !ok {
				return nil, c.valueError(node, "invalid flag "+value, ErrorCodeInvalidValue)
			}

			flags = append(flags, newFlag())
		}

		return flattenAnd(flags...)
	}

	return nil, NewParseErrorWithContext(
		"unknown filter key "+node.Key, node.KeyPosition, c.query, node.Key, ErrorCodeUnknownKey,
	)
}

func (c *compiler) patternValues(node *AttributeExpression, subject Subject) (Predicate, error) {
	return c.orValues(node.Value, node.ValuePosition, func(value string) (Predicate, error) {
		return NewPatternFilterFor(value, subject)
	})
}

// orValues builds one predicate per comma-separated value and ORs them.
func (c *compiler) orValues(raw string, position int, build func(value string) (Predicate, error)) (Predicate, error) {
	values := splitValues(raw)
	if len(values) == 0 {
		return nil, NewParseErrorWithContext("empty value", position, c.query, raw, ErrorCodeMissingValue)
	}

	predicates := make([]Predicate, 0, len(values))

	for _, value := range values {
		predicate, err := build(value)
		if err != nil {
			var cfgErr ConfigurationError
			if errors.As(err, &cfgErr) {
				return nil, NewParseErrorWithContext(cfgErr.Message, position, c.query, raw, ErrorCodeInvalidValue)
			}

			return nil, err
		}

		predicates = append(predicates, predicate)
	}

	if len(predicates) == 1 {
		return predicates[0], nil
	}

	return NewOr(predicates...)
}

func (c *compiler) valueError(node *AttributeExpression, message string, code ErrorCode) error {
	return NewParseErrorWithContext(message, node.ValuePosition, c.query, node.Value, code)
}

// newAttributePredicate keeps plain names case-insensitive by sending only the wildcard values
// to a pattern filter. Both halves are joined with AND or OR to match the mode.
func newAttributePredicate(mode Mode, deep bool, values []string) (Predicate, error) {
	var names, patterns []string

	for _, value := range values {
		if strings.ContainsAny(value, "*?") {
			patterns = append(patterns, value)
		} else {
			names = append(names, value)
		}
	}

	if len(patterns) == 0 {
		return NewAttributeFilter(mode, deep, names...)
	}

	patternFilter, err := NewAttributePatternFilter(mode, deep, patterns...)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return patternFilter, nil
	}

	nameFilter, err := NewAttributeFilter(mode, deep, names...)
	if err != nil {
		return nil, err
	}

	if mode == ModeAny {
		return NewOr(nameFilter, patternFilter)
	}

	return NewAnd(nameFilter, patternFilter)
}

// flattenAnd joins predicates into one AND chain, merging nested chains.
func flattenAnd(predicates ...Predicate) (Predicate, error) {
	if len(predicates) == 1 {
		return predicates[0], nil
	}

	flat := make([]Predicate, 0, len(predicates))

	for _, predicate := range predicates {
		if and, ok := predicate.(*AndFilter); ok {
			flat = append(flat, and.children...)
			continue
		}

		flat = append(flat, predicate)
	}

	return NewAnd(flat...)
}

func splitValues(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}

	return values
}
