package filter

import (
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

const (
	invokeMethod      = "__invoke"
	constructorMethod = "__construct"
)

// FlagFilter tests a single boolean property of a declaration.
type FlagFilter struct {
	test func(decl *declaration.Declaration) bool
	name string
}

// Abstract accepts abstract classes.
func Abstract() *FlagFilter {
	return &FlagFilter{name: "abstract", test: func(decl *declaration.Declaration) bool {
		return decl.Kind() == declaration.KindClass && decl.HasModifier(declaration.ModifierAbstract)
	}}
}

// Final accepts final classes.
func Final() *FlagFilter {
	return &FlagFilter{name: "final", test: func(decl *declaration.Declaration) bool {
		return decl.Kind() == declaration.KindClass && decl.HasModifier(declaration.ModifierFinal)
	}}
}

// Instantiable accepts concrete classes whose constructor, if declared, is public.
func Instantiable() *FlagFilter {
	return &FlagFilter{name: "instantiable", test: func(decl *declaration.Declaration) bool {
		if !decl.IsConcrete() {
			return false
		}

		ctor, ok := decl.Method(constructorMethod)

		return !ok || ctor.Public
	}}
}

// Callable accepts functions, and classes declaring a public non-static `__invoke`
// that can be called without arguments.
func Callable() *FlagFilter {
	return &FlagFilter{name: "callable", test: func(decl *declaration.Declaration) bool {
		switch decl.Kind() {
		case declaration.KindFunction:
			return true
		case declaration.KindClass:
			invoke, ok := decl.Method(invokeMethod)
			return ok && invoke.Public && !invoke.Static && invoke.RequiredParams == 0
		case declaration.KindInterface, declaration.KindTrait, declaration.KindEnum:
		}

		return false
	}}
}

// Accept implements Predicate.
func (f *FlagFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil {
		return false
	}

	return f.test(decl)
}

func (f *FlagFilter) String() string {
	return "is=" + f.name
}

// KindFilter accepts declarations whose kind is in a set.
type KindFilter struct {
	kinds declaration.Kinds
}

// NewKindFilter returns a filter accepting any of the given kinds. An empty set rejects everything.
func NewKindFilter(kinds ...declaration.Kind) (*KindFilter, error) {
	f := &KindFilter{kinds: make(declaration.Kinds, 0, len(kinds))}

	for _, kind := range kinds {
		if !kind.IsValid() {
			return nil, NewConfigurationError("invalid kind %q, supported kinds: %s", kind, declaration.AllKinds)
		}

		if !f.kinds.Contains(kind) {
			f.kinds = append(f.kinds, kind)
		}
	}

	return f, nil
}

// Accept implements Predicate.
func (f *KindFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil {
		return false
	}

	return f.kinds.Contains(decl.Kind())
}

func (f *KindFilter) String() string {
	return "kind=" + joinKinds(f.kinds)
}

func joinKinds(kinds declaration.Kinds) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}

	return strings.Join(names, ",")
}
