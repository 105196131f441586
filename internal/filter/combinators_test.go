package filter_test

import (
	"testing"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFilter records how often it was evaluated.
type countingFilter struct {
	calls  int
	result bool
}

func (f *countingFilter) Accept(*declaration.Declaration, string) bool {
	f.calls++
	return f.result
}

func (f *countingFilter) String() string {
	return "counting"
}

func TestEmptyCombinators(t *testing.T) {
	t.Parallel()

	and, err := filter.NewAnd()
	require.NoError(t, err)

	or, err := filter.NewOr()
	require.NoError(t, err)

	for _, d := range allKinds() {
		assert.True(t, and.Accept(d, ""), d.String())
		assert.False(t, or.Accept(d, ""), d.String())
	}

	assert.Equal(t, "*", and.String())
	assert.Equal(t, "!*", or.String())
}

func TestCombinatorsShortCircuit(t *testing.T) {
	t.Parallel()

	d := class("Foo")

	reject := &countingFilter{result: false}
	accept := &countingFilter{result: true}
	after := &countingFilter{result: true}

	and, err := filter.NewAnd(accept, reject, after)
	require.NoError(t, err)
	assert.False(t, and.Accept(d, ""))
	assert.Equal(t, 1, accept.calls)
	assert.Equal(t, 1, reject.calls)
	assert.Zero(t, after.calls)

	or, err := filter.NewOr(reject, accept, after)
	require.NoError(t, err)
	assert.True(t, or.Accept(d, ""))
	assert.Equal(t, 2, reject.calls)
	assert.Equal(t, 2, accept.calls)
	assert.Zero(t, after.calls)
}

func TestCombinatorsRejectNilChildren(t *testing.T) {
	t.Parallel()

	var typedNil *filter.KindFilter

	_, err := filter.NewAnd(filter.Abstract(), nil)
	require.Error(t, err)

	_, err = filter.NewOr(typedNil)
	require.Error(t, err)

	_, err = filter.NewNot(nil)
	require.Error(t, err)

	and, err := filter.NewAnd()
	require.NoError(t, err)

	_, err = and.With(typedNil)
	require.Error(t, err)
}

func TestWithWithoutUseIdentity(t *testing.T) {
	t.Parallel()

	first := filter.Final()
	second := filter.Final()

	and, err := filter.NewAnd(first)
	require.NoError(t, err)

	extended, err := and.With(second)
	require.NoError(t, err)

	assert.Len(t, and.Children(), 1, "With must not modify the receiver")
	assert.Len(t, extended.Children(), 2)

	reduced := extended.Without(first)
	require.Len(t, reduced.Children(), 1)
	assert.Same(t, second, reduced.Children()[0])

	unchanged := extended.Without(filter.Final())
	assert.Len(t, unchanged.Children(), 2, "an equal but distinct predicate is not removed")

	or, err := filter.NewOr(first, second, first)
	require.NoError(t, err)
	assert.Len(t, or.Without(first).Children(), 1)
}

func TestNot(t *testing.T) {
	t.Parallel()

	kinds, err := filter.NewKindFilter(declaration.KindInterface)
	require.NoError(t, err)

	not, err := filter.NewNot(kinds)
	require.NoError(t, err)

	assert.Equal(t, []string{`App\Plain`, `App\Helpers`, `App\Status`, `App\helper`}, names(acceptAll(not, allKinds()...)))
	assert.False(t, not.Accept(nil, ""))
	assert.Equal(t, "!kind=interface", not.String())
}

func TestSame(t *testing.T) {
	t.Parallel()

	f := filter.Abstract()

	assert.True(t, filter.Same(f, f))
	assert.False(t, filter.Same(f, filter.Abstract()))
	assert.True(t, filter.Same(nil, nil))
	assert.False(t, filter.Same(f, nil))
}

func TestFuncFilter(t *testing.T) {
	t.Parallel()

	short, err := filter.NewFuncFilter("short-name", func(decl *declaration.Declaration, _ string) bool {
		return len(decl.Name()) <= 5
	})
	require.NoError(t, err)

	assert.Equal(t, []string{`App\Plain`, `App\enum`}, names(acceptAll(short,
		class(`App\Plain`),
		class(`App\Controller`),
		decl(declaration.KindFunction, `App\enum`),
	)))
	assert.Equal(t, "short-name", short.String())

	_, err = filter.NewFuncFilter("nil", nil)
	require.Error(t, err)
}
