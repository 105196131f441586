// Package filter provides predicates over discovered declarations and a query language compiling to them.
//
// # Predicates
//
// Every filter implements Predicate. Leaf predicates test one aspect of a declaration:
//
//	PatternFilter           name, namespace or qualified name against a wildcard pattern
//	ImplementsFilter        implemented interfaces, all or any
//	SubclassFilter          transitive parent chain, resolved through a declaration.Resolver
//	AttributeFilter         attached attributes by name, optionally on members too
//	AttributePatternFilter  attached attributes by wildcard pattern
//	KindFilter              declaration kind
//	FlagFilter              abstract, final, instantiable, callable
//
// AndFilter, OrFilter and NotFilter compose them. An empty AND chain accepts everything and an
// empty OR chain rejects everything.
//
// Patterns are classified once into the cheapest matching strategy: exact, prefix, suffix,
// contains, and a general glob backed by github.com/gobwas/glob.
//
// # Query Syntax
//
// A query is made of terms joined by `|`, which intersects them from left to right:
//
//	*Controller                     bare pattern: simple name, namespace or qualified name
//	App\Http\*                      everything in App\Http and below
//	kind=class,enum                 declaration kind
//	implements=Countable,Iterator   every interface must be implemented
//	implements-any=Countable        at least one interface
//	extends=App\Model               anywhere in the parent chain
//	attribute=Route                 class-level attribute
//	deep-attribute=Route,Auth       attributes on the class or its members
//	attribute-any=*Listener         attribute patterns
//	is=final                        abstract, final, instantiable, callable
//	name=User*                      pinned pattern subjects: name, namespace, fqn
//
// `!` negates the term that follows it:
//
//	App\* | !is=abstract
//
// Several queries are unioned: a declaration must match at least one positive query
// and every negated one.
package filter
