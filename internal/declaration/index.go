package declaration

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Resolver looks up a declaration by its qualified name.
type Resolver interface {
	Resolve(qualifiedName string) (*Declaration, bool)
}

// ResolverFunc is an adaptor to allow the use of ordinary functions as resolvers.
type ResolverFunc func(qualifiedName string) (*Declaration, bool)

// Resolve implements Resolver.
func (fn ResolverFunc) Resolve(qualifiedName string) (*Declaration, bool) {
	return fn(qualifiedName)
}

// Index is a concurrency-safe map of declarations keyed by qualified name.
// Keys are compared case-insensitively and ignore a leading separator.
type Index struct {
	decls *xsync.MapOf[string, *Declaration]
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{decls: xsync.NewMapOf[string, *Declaration]()}
}

// Add stores decl unless a declaration with the same qualified name is already present.
// Returns the stored declaration and whether decl was the one stored.
func (index *Index) Add(decl *Declaration) (*Declaration, bool) {
	stored, loaded := index.decls.LoadOrStore(indexKey(decl.QualifiedName()), decl)

	return stored, !loaded
}

// Resolve implements Resolver.
func (index *Index) Resolve(qualifiedName string) (*Declaration, bool) {
	return index.decls.Load(indexKey(qualifiedName))
}

// Len returns the number of indexed declarations.
func (index *Index) Len() int {
	return index.decls.Size()
}

// Declarations returns every indexed declaration sorted by qualified name.
func (index *Index) Declarations() Declarations {
	decls := make(Declarations, 0, index.decls.Size())

	index.decls.Range(func(_ string, decl *Declaration) bool {
		decls = append(decls, decl)
		return true
	})

	return decls.Sort()
}
