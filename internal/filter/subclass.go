package filter

import (
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// SubclassFilter accepts classes having the ancestor anywhere in their parent chain.
//
// Parents beyond the immediate one are looked up through the resolver. A parent that cannot be
// resolved ends the walk with a rejection, as does a cycle in the chain.
type SubclassFilter struct {
	resolver declaration.Resolver
	ancestor string
}

// NewSubclassFilter returns a filter for descendants of ancestor.
// A nil resolver limits the check to the immediate parent.
func NewSubclassFilter(ancestor string, resolver declaration.Resolver) (*SubclassFilter, error) {
	ancestor = declaration.NormalizeName(ancestor)
	if ancestor == "" {
		return nil, NewConfigurationError("subclass filter requires an ancestor name")
	}

	return &SubclassFilter{ancestor: ancestor, resolver: resolver}, nil
}

// Accept implements Predicate.
func (f *SubclassFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil || decl.Kind() != declaration.KindClass {
		return false
	}

	visited := map[string]struct{}{
		strings.ToLower(decl.QualifiedName()): {},
	}

	for current := decl; ; {
		parent, ok := current.Parent()
		if !ok {
			return false
		}

		if declaration.EqualNames(parent, f.ancestor) {
			return true
		}

		key := strings.ToLower(parent)
		if _, seen := visited[key]; seen {
			return false
		}

		visited[key] = struct{}{}

		if f.resolver == nil {
			return false
		}

		next, ok := f.resolver.Resolve(parent)
		if !ok || next.Kind() != declaration.KindClass {
			return false
		}

		current = next
	}
}

func (f *SubclassFilter) String() string {
	return "extends=" + f.ancestor
}
