package pipeline_test

import (
	"errors"
	"iter"
	"testing"

	"github.com/gruntwork-io/declscan/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource yields values keyed by their string form and counts how many items were pulled
// and how many traversals were started.
type countingSource struct {
	values      []int
	pulled      int
	traversals  int
	completions int
}

func (src *countingSource) seq() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		src.traversals++

		for _, value := range src.values {
			src.pulled++

			if !yield(string(rune('a'+value)), value) {
				return
			}
		}

		src.completions++
	}
}

// countingFilter records its evaluations.
type countingFilter struct {
	accept func(int) bool
	calls  int
}

func (f *countingFilter) Accept(value int, _ string) bool {
	f.calls++
	return f.accept(value)
}

func even() *countingFilter {
	return &countingFilter{accept: func(value int) bool { return value%2 == 0 }}
}

func above(n int) *countingFilter {
	return &countingFilter{accept: func(value int) bool { return value > n }}
}

func TestNewRejectsNilInput(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New[string, int](nil)
	require.Error(t, err)

	var cfgErr pipeline.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	var typedNil *countingFilter

	src := &countingSource{values: []int{1}}

	_, err = pipeline.New(src.seq(), pipeline.Filter[string, int](even()), typedNil)
	require.ErrorAs(t, err, &cfgErr)
	assert.Zero(t, src.traversals, "configuration errors are raised before traversal")

	p, err := pipeline.New(src.seq())
	require.NoError(t, err)

	_, err = p.WithFilter(nil, false)
	require.ErrorAs(t, err, &cfgErr)
}

func TestAllFiltersInOrder(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{5, 2, 8, 3, 6, 4}}

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](even()), above(3))
	require.NoError(t, err)
	assert.Equal(t, pipeline.Lazy, p.State())

	var keys []string

	var values []int

	for key, value := range p.All() {
		keys = append(keys, key)
		values = append(values, value)
	}

	assert.Equal(t, []int{8, 6, 4}, values)
	assert.Equal(t, []string{"i", "g", "e"}, keys)
	assert.Equal(t, pipeline.Materialized, p.State())
}

func TestMaterializationIsIdempotent(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{1, 2, 3, 4, 5, 6}}
	filter := even()

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](filter))
	require.NoError(t, err)

	first := p.ToSlice()
	second := p.ToSlice()

	assert.Equal(t, []int{2, 4, 6}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, p.Count())
	assert.Equal(t, 3, p.Count())
	assert.Equal(t, []string{"c", "e", "g"}, p.Keys())

	var iterated []int
	for value := range p.Values() {
		iterated = append(iterated, value)
	}

	assert.Equal(t, first, iterated)
	assert.Equal(t, 1, src.traversals)
	assert.Equal(t, 6, src.pulled)
	assert.Equal(t, 6, filter.calls, "filters run once per upstream item")
}

func TestCountReturnsAcceptedItems(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{1, 3, 5, 7}}

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](above(4)))
	require.NoError(t, err)

	assert.Equal(t, 2, p.Count())
	assert.Equal(t, []int{5, 7}, p.ToSlice())
	assert.Equal(t, 1, src.traversals)
}

func TestEarlyBreakDoesNotMaterialize(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{2, 4, 6, 8, 10}}
	filter := even()

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](filter))
	require.NoError(t, err)

	for value := range p.Values() {
		if value == 4 {
			break
		}
	}

	assert.Equal(t, 2, src.pulled, "remaining upstream items are not pulled")
	assert.Zero(t, src.completions)
	assert.Equal(t, pipeline.Lazy, p.State())

	assert.Equal(t, []int{2, 4, 6, 8, 10}, p.ToSlice())
	assert.Equal(t, pipeline.Materialized, p.State())
	assert.Equal(t, 1, src.traversals, "the upstream is resumed, not restarted")
	assert.Equal(t, 5, src.pulled)
	assert.Equal(t, 5, filter.calls)
}

func TestSinglePassUpstreamSurvivesEarlyBreak(t *testing.T) {
	t.Parallel()

	values := make(chan int, 6)
	for _, value := range []int{1, 2, 3, 4, 5, 6} {
		values <- value
	}

	close(values)

	// Each item can be received once; ranging over the sequence again yields nothing new.
	drain := func(yield func(string, int) bool) {
		for value := range values {
			if !yield(string(rune('a'+value)), value) {
				return
			}
		}
	}

	p, err := pipeline.New(drain, pipeline.Filter[string, int](above(1)))
	require.NoError(t, err)

	derived, err := p.WithFilter(even(), false)
	require.NoError(t, err)

	var first []int

	for value := range p.Values() {
		first = append(first, value)

		if len(first) == 2 {
			break
		}
	}

	assert.Equal(t, []int{2, 3}, first)

	var nested [][2]int

	for outer := range derived.Values() {
		for inner := range derived.Values() {
			nested = append(nested, [2]int{outer, inner})
			break
		}
	}

	assert.Equal(t, [][2]int{{2, 2}, {4, 2}, {6, 2}}, nested)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, p.ToSlice())
	assert.Equal(t, []string{"c", "d", "e", "f", "g"}, p.Keys())
}

func TestCloseStopsPartialUpstream(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{2, 4, 6, 8}}

	p, err := pipeline.New(src.seq())
	require.NoError(t, err)

	for range p.All() {
		break
	}

	p.Close()
	p.Close()

	assert.Equal(t, []int{2}, p.ToSlice(), "items not pulled before Close are dropped")
	assert.Equal(t, 1, src.pulled)
	assert.Zero(t, src.completions)

	p.Close()
	assert.Equal(t, []int{2}, p.ToSlice())
}

func TestWithFilterAfterMaterializeUsesCache(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{1, 2, 3, 4, 5, 6, 7, 8}}

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](even()))
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 6, 8}, p.ToSlice())

	derived, err := p.WithFilter(above(4), false)
	require.NoError(t, err)

	assert.Equal(t, []int{6, 8}, derived.ToSlice())
	assert.Equal(t, 1, src.traversals, "original source is not re-pulled")
	assert.Equal(t, []int{2, 4, 6, 8}, p.ToSlice(), "receiver is unchanged")
	assert.Len(t, p.Filters(), 1)
	assert.Len(t, derived.Filters(), 2)
}

func TestWithFilterBeforeMaterializeSharesUpstream(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{1, 2, 3, 4, 5, 6}}

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](even()))
	require.NoError(t, err)

	derived, err := p.WithFilter(above(2), true)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 6}, derived.ToSlice())
	assert.Equal(t, []int{2, 4, 6}, p.ToSlice())
	assert.Equal(t, 1, src.traversals, "the completed upstream traversal is shared")
}

func TestPrependOnlyChangesEvaluationOrder(t *testing.T) {
	t.Parallel()

	values := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	base, err := pipeline.FromSlice(values, pipeline.Filter[int, int](pipeline.FilterFunc[int, int](func(value, _ int) bool {
		return value%3 != 0
	})))
	require.NoError(t, err)

	cheap := &countingFilter{accept: func(value int) bool { return value > 8 }}
	adapter := pipeline.FilterFunc[int, int](func(value, key int) bool {
		return cheap.Accept(value, "")
	})

	prepended, err := base.WithFilter(adapter, true)
	require.NoError(t, err)

	appended, err := base.WithFilter(adapter, false)
	require.NoError(t, err)

	assert.Equal(t, []int{10}, prepended.ToSlice())
	assert.Equal(t, prepended.ToSlice(), appended.ToSlice())
	assert.Equal(t, []int{9}, prepended.Keys())
}

func TestWithoutFilterUsesIdentity(t *testing.T) {
	t.Parallel()

	src := &countingSource{values: []int{1, 2, 3, 4, 5, 6}}
	evenFilter := even()

	p, err := pipeline.New(src.seq(), pipeline.Filter[string, int](evenFilter), above(3))
	require.NoError(t, err)

	assert.Equal(t, []int{4, 6}, p.ToSlice())

	withoutEven := p.WithoutFilter(evenFilter)
	assert.Len(t, withoutEven.Filters(), 1)
	assert.Equal(t, []int{4, 5, 6}, withoutEven.ToSlice())

	unchanged := p.WithoutFilter(even())
	assert.Len(t, unchanged.Filters(), 2, "an equally configured filter is not removed")
	assert.Equal(t, []int{4, 6}, unchanged.ToSlice())

	assert.Equal(t, 1, src.traversals)
}

func TestEmptyFilterListAcceptsEverything(t *testing.T) {
	t.Parallel()

	p, err := pipeline.FromSlice([]string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, p.ToSlice())
	assert.Equal(t, []int{0, 1}, p.Keys())
}

func TestSkipErrors(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken")

	items := func(yield func(pipeline.Item[string, int]) bool) {
		for _, item := range []pipeline.Item[string, int]{
			{Key: "a", Value: 1},
			{Key: "b", Err: errBroken},
			{Key: "c", Value: 3},
		} {
			if !yield(item) {
				return
			}
		}
	}

	var skipped []string

	p, err := pipeline.New(pipeline.SkipErrors(items, func(item pipeline.Item[string, int]) {
		skipped = append(skipped, item.Key)
	}))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, p.ToSlice())
	assert.Equal(t, []string{"a", "c"}, p.Keys())
	assert.Equal(t, []string{"b"}, skipped)

	var withoutCallback []int
	for _, value := range pipeline.SkipErrors(items, nil) {
		withoutCallback = append(withoutCallback, value)
	}

	assert.Equal(t, []int{1, 3}, withoutCallback)
}
