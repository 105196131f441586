package filter_test

import (
	"context"
	"testing"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []*declaration.Declaration {
	return []*declaration.Declaration{
		class(`App\Http\Controller`, withModifiers(declaration.ModifierAbstract)),
		class(`App\Http\UserController`, withParent(`App\Http\Controller`), withInterfaces("Countable"),
			withTags(declaration.ClassPoint, "Route"), withTags(method("show"), "IsGranted")),
		class(`App\Http\Admin\AdminController`, withParent(`App\Http\UserController`), withModifiers(declaration.ModifierFinal),
			withInterfaces("Countable", "Serializable")),
		decl(declaration.KindInterface, `App\Contracts\Repository`),
		decl(declaration.KindTrait, `App\Concerns\HasEvents`),
		decl(declaration.KindEnum, `App\Status`, withInterfaces("Serializable")),
		decl(declaration.KindFunction, `App\helpers`),
		class(`Vendor\Lib\Client`, withMethods(declaration.Method{Name: "__invoke", Public: true})),
	}
}

func fixtureIndex() *declaration.Index {
	index := declaration.NewIndex()
	for _, d := range fixtures() {
		index.Add(d)
	}

	return index
}

func TestParseAndEvaluate(t *testing.T) {
	t.Parallel()

	index := fixtureIndex()

	testCases := []struct {
		query    string
		expected []string
	}{
		{query: "*Controller", expected: []string{`App\Http\Controller`, `App\Http\UserController`, `App\Http\Admin\AdminController`}},
		{query: `App\Http\*`, expected: []string{`App\Http\Controller`, `App\Http\UserController`, `App\Http\Admin\AdminController`}},
		{query: `App\Http\User*`, expected: []string{`App\Http\UserController`}},
		{query: `App\*\*Controller`, expected: []string{`App\Http\Controller`, `App\Http\UserController`, `App\Http\Admin\AdminController`}},
		{query: "name=User*,Client", expected: []string{`App\Http\UserController`, `Vendor\Lib\Client`}},
		{query: `namespace=App\Http`, expected: []string{`App\Http\Controller`, `App\Http\UserController`, `App\Http\Admin\AdminController`}},
		{query: `fqn=App\Status`, expected: []string{`App\Status`}},
		{query: "kind=trait,function", expected: []string{`App\Concerns\HasEvents`, `App\helpers`}},
		{query: "implements=Countable,Serializable", expected: []string{`App\Http\Admin\AdminController`}},
		{query: "implements-any=Serializable", expected: []string{`App\Http\Admin\AdminController`, `App\Status`}},
		{query: `extends=App\Http\Controller`, expected: []string{`App\Http\UserController`, `App\Http\Admin\AdminController`}},
		{query: "attribute=Route", expected: []string{`App\Http\UserController`}},
		{query: "deep-attribute=Route,IsGranted", expected: []string{`App\Http\UserController`}},
		{query: "attribute=Route,IsGranted", expected: []string{}},
		{query: "deep-attribute-any=Is*", expected: []string{`App\Http\UserController`}},
		{query: "deep-attribute=route,Is*", expected: []string{`App\Http\UserController`}},
		{query: "attribute-any=route,Nope*", expected: []string{`App\Http\UserController`}},
		{query: "deep-attribute=route,is*", expected: []string{}},
		{query: "is=abstract", expected: []string{`App\Http\Controller`}},
		{query: "is=instantiable,final", expected: []string{`App\Http\Admin\AdminController`}},
		{query: "is=callable", expected: []string{`App\helpers`, `Vendor\Lib\Client`}},
		{query: `App\* | kind=class | !is=abstract`, expected: []string{`App\Http\UserController`, `App\Http\Admin\AdminController`}},
		{query: "!kind=class", expected: []string{`App\Contracts\Repository`, `App\Concerns\HasEvents`, `App\Status`, `App\helpers`}},
		{query: "KIND=enum", expected: []string{`App\Status`}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			t.Parallel()

			f, err := filter.Parse(tc.query, index)
			require.NoError(t, err)
			assert.Equal(t, tc.query, f.String())
			assert.Equal(t, tc.expected, names(acceptAll(f, fixtures()...)))
		})
	}
}

func TestParseCompileErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		query    string
		code     filter.ErrorCode
		position int
	}{
		{query: "color=red", code: filter.ErrorCodeUnknownKey, position: 0},
		{query: "Foo | kind=struct", code: filter.ErrorCodeInvalidValue, position: 11},
		{query: "is=abstract,lazy", code: filter.ErrorCodeInvalidValue, position: 3},
		{query: "kind= , ", code: filter.ErrorCodeMissingValue, position: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			t.Parallel()

			_, err := filter.Parse(tc.query, nil)
			require.Error(t, err)

			var parseErr filter.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.code, parseErr.ErrorCode)
			assert.Equal(t, tc.position, parseErr.Position)
		})
	}
}

func TestIsNegated(t *testing.T) {
	t.Parallel()

	testCases := map[string]bool{
		"!kind=interface":       true,
		"!(Foo)":                true,
		"kind=interface":        false,
		"!kind=interface | Foo": false,
	}

	for query, expected := range testCases {
		f, err := filter.Parse(query, nil)
		require.NoError(t, err, query)
		assert.Equal(t, expected, f.IsNegated(), query)
	}
}

func TestFiltersUnion(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilterQueries([]string{"kind=enum", "kind=interface", "!App\\Contracts\\*"}, nil)
	require.NoError(t, err)
	require.Len(t, filters, 3)

	union := filters.Predicate()
	assert.Equal(t, []string{`App\Status`}, names(acceptAll(union, fixtures()...)))
	assert.Equal(t, `["kind=enum","kind=interface","!App\\Contracts\\*"]`, filters.String())
}

func TestFiltersOnlyNegated(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilterQueries([]string{"!kind=class", "!kind=function"}, nil)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{`App\Contracts\Repository`, `App\Concerns\HasEvents`, `App\Status`},
		names(acceptAll(filters.Predicate(), fixtures()...)),
	)
}

func TestFiltersEmptyAcceptsEverything(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilterQueries(nil, nil)
	require.NoError(t, err)

	assert.Len(t, acceptAll(filters.Predicate(), fixtures()...), len(fixtures()))
	assert.False(t, filters.Predicate().Accept(nil, ""))
}

func TestParseFilterQueriesCollectsErrors(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilterQueries([]string{"kind=", "Foo", "color=red"}, nil)
	require.Error(t, err)
	assert.Len(t, filters, 1)

	var multiErr *errors.MultiError
	require.True(t, errors.As(err, &multiErr))
	require.Len(t, multiErr.WrappedErrors(), 2)

	var queryErr *filter.QueryError
	require.True(t, errors.As(multiErr.WrappedErrors()[1], &queryErr))
	assert.Equal(t, 2, queryErr.Index)
	assert.Equal(t, "color=red", queryErr.Query)
}

func TestParseFilterQueriesWithTelemetry(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilterQueriesWithTelemetry(context.Background(), []string{"kind=class"}, nil)
	require.NoError(t, err)
	assert.Len(t, filters, 1)

	var evaluated bool

	err = filter.TraceFilterEvaluate(context.Background(), "kind=class", func(context.Context) error {
		evaluated = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, evaluated)
}
