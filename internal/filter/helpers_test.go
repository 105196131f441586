package filter_test

import (
	"github.com/gruntwork-io/declscan/internal/declaration"
)

func class(qualifiedName string, opts ...func(*declaration.Spec)) *declaration.Declaration {
	return decl(declaration.KindClass, qualifiedName, opts...)
}

func decl(kind declaration.Kind, qualifiedName string, opts ...func(*declaration.Spec)) *declaration.Declaration {
	namespace, name := declaration.SplitName(qualifiedName)

	spec := declaration.Spec{Name: name, Namespace: namespace, Kind: kind}
	for _, opt := range opts {
		opt(&spec)
	}

	return declaration.MustNew(spec)
}

func withInterfaces(names ...string) func(*declaration.Spec) {
	return func(spec *declaration.Spec) { spec.Interfaces = names }
}

func withParent(name string) func(*declaration.Spec) {
	return func(spec *declaration.Spec) { spec.Parent = name }
}

func withModifiers(modifiers ...declaration.Modifier) func(*declaration.Spec) {
	return func(spec *declaration.Spec) { spec.Modifiers = modifiers }
}

func withMethods(methods ...declaration.Method) func(*declaration.Spec) {
	return func(spec *declaration.Spec) { spec.Methods = methods }
}

func withTags(point declaration.Point, tags ...string) func(*declaration.Spec) {
	return func(spec *declaration.Spec) {
		spec.Attachments = append(spec.Attachments, declaration.Attachment{Point: point, Tags: tags})
	}
}

func method(name string) declaration.Point {
	return declaration.Point{Kind: declaration.PointMethod, Name: name}
}

// allKinds returns one declaration of every kind, used to check that predicates are total.
func allKinds() []*declaration.Declaration {
	return []*declaration.Declaration{
		class(`App\Plain`),
		decl(declaration.KindInterface, `App\Contract`, withInterfaces("Countable")),
		decl(declaration.KindTrait, `App\Helpers`),
		decl(declaration.KindEnum, `App\Status`, withInterfaces("Countable")),
		decl(declaration.KindFunction, `App\helper`),
	}
}

func names(decls []*declaration.Declaration) []string {
	return declaration.Declarations(decls).QualifiedNames()
}

func acceptAll(predicate interface {
	Accept(*declaration.Declaration, string) bool
}, decls ...*declaration.Declaration) []*declaration.Declaration {
	var accepted []*declaration.Declaration

	for _, d := range decls {
		if predicate.Accept(d, d.QualifiedName()) {
			accepted = append(accepted, d)
		}
	}

	return accepted
}
