// Package pipeline threads a lazy sequence of keyed values through an ordered list of filters.
//
// A Pipeline starts Lazy, bound to an upstream iter.Seq2. The first complete traversal, or an
// explicit ToSlice or Count, moves it to Materialized: the accepted items are cached and the
// upstream is never pulled again. Breaking out of a traversal early leaves the pipeline Lazy and
// does not pull the remaining upstream items; a later traversal picks up where the upstream stopped.
// The upstream is ranged over at most once, so single-pass sequences such as a directory walk are
// safe. Close releases an upstream that will not be read to the end.
//
// Pipelines are not safe for concurrent use. Derived pipelines share their parent's upstream, so
// a pipeline and the pipelines derived from it must be used from a single goroutine.
package pipeline
