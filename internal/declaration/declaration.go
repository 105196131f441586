// Package declaration provides the immutable record describing one discovered declaration.
//
// This package contains only data types and their associated methods, with no discovery or
// filtering logic, so that the parser, filter and listener packages can share it.
package declaration

import (
	"encoding/json"
	"iter"
	"slices"
	"strings"

	"github.com/gruntwork-io/declscan/internal/errors"
)

// Declaration is a read-only description of a discovered class, interface, trait, enum or function.
// A Declaration is never mutated after New returns; every accessor returning a slice returns a copy.
type Declaration struct {
	name        string
	namespace   string
	kind        Kind
	parent      string
	modifiers   []Modifier
	interfaces  []string
	attachments []Attachment
	methods     []Method
	location    SourceLocation
}

// Spec holds the values a Declaration is built from.
type Spec struct {
	Name        string
	Namespace   string
	Kind        Kind
	Parent      string
	Modifiers   []Modifier
	Interfaces  []string
	Attachments []Attachment
	Methods     []Method
	Location    SourceLocation
}

// New validates spec and returns the Declaration it describes.
func New(spec Spec) (*Declaration, error) {
	if spec.Name == "" {
		return nil, errors.Errorf("declaration at %s has no name", spec.Location)
	}

	if strings.Contains(spec.Name, Separator) {
		return nil, errors.Errorf("declaration name %q must not contain %q", spec.Name, Separator)
	}

	if !spec.Kind.IsValid() {
		return nil, errors.Errorf("declaration %q has invalid kind %q", spec.Name, spec.Kind)
	}

	if spec.Kind != KindClass && (len(spec.Modifiers) > 0 || spec.Parent != "") {
		return nil, errors.Errorf("%s %q cannot have modifiers or a parent", spec.Kind, spec.Name)
	}

	if (spec.Kind == KindTrait || spec.Kind == KindFunction) && len(spec.Interfaces) > 0 {
		return nil, errors.Errorf("%s %q cannot implement interfaces", spec.Kind, spec.Name)
	}

	decl := &Declaration{
		name:      spec.Name,
		namespace: strings.Trim(spec.Namespace, Separator),
		kind:      spec.Kind,
		parent:    NormalizeName(spec.Parent),
		location:  spec.Location,
		methods:   slices.Clone(spec.Methods),
	}

	for _, modifier := range spec.Modifiers {
		if !slices.Contains(decl.modifiers, modifier) {
			decl.modifiers = append(decl.modifiers, modifier)
		}
	}

	for _, iface := range spec.Interfaces {
		decl.interfaces = append(decl.interfaces, NormalizeName(iface))
	}

	for _, attachment := range spec.Attachments {
		tags := make([]string, 0, len(attachment.Tags))
		for _, tag := range attachment.Tags {
			tags = append(tags, NormalizeName(tag))
		}

		decl.attachments = append(decl.attachments, Attachment{Point: attachment.Point, Tags: tags})
	}

	return decl, nil
}

// MustNew is like New but panics on an invalid spec. Intended for tests and fixtures.
func MustNew(spec Spec) *Declaration {
	decl, err := New(spec)
	if err != nil {
		panic(err)
	}

	return decl
}

// Name returns the simple name.
func (decl *Declaration) Name() string {
	return decl.name
}

// Namespace returns the containing namespace, possibly empty.
func (decl *Declaration) Namespace() string {
	return decl.namespace
}

// QualifiedName returns the namespace and name joined by Separator.
func (decl *Declaration) QualifiedName() string {
	return JoinName(decl.namespace, decl.name)
}

// Kind returns the declaration kind.
func (decl *Declaration) Kind() Kind {
	return decl.kind
}

// Modifiers returns the class modifiers. Always empty for non-class kinds.
func (decl *Declaration) Modifiers() []Modifier {
	return slices.Clone(decl.modifiers)
}

// HasModifier reports whether the declaration carries the given modifier.
func (decl *Declaration) HasModifier(modifier Modifier) bool {
	return slices.Contains(decl.modifiers, modifier)
}

// IsConcrete reports whether the declaration is a class that is not abstract.
func (decl *Declaration) IsConcrete() bool {
	return decl.kind == KindClass && !decl.HasModifier(ModifierAbstract)
}

// Interfaces returns the qualified names of the implemented interfaces in declaration order.
func (decl *Declaration) Interfaces() []string {
	return slices.Clone(decl.interfaces)
}

// InterfaceCount returns the number of implemented interfaces.
func (decl *Declaration) InterfaceCount() int {
	return len(decl.interfaces)
}

// ImplementsDirectly reports whether name is one of the implemented interfaces.
func (decl *Declaration) ImplementsDirectly(name string) bool {
	for _, iface := range decl.interfaces {
		if EqualNames(iface, name) {
			return true
		}
	}

	return false
}

// Parent returns the qualified name of the superclass, if any.
func (decl *Declaration) Parent() (string, bool) {
	return decl.parent, decl.parent != ""
}

// Attachments returns every attachment point with its attribute names, class point first.
func (decl *Declaration) Attachments() []Attachment {
	attachments := make([]Attachment, len(decl.attachments))
	for i, attachment := range decl.attachments {
		attachments[i] = Attachment{Point: attachment.Point, Tags: slices.Clone(attachment.Tags)}
	}

	return attachments
}

// Tags yields the attribute names attached to the declaration itself and,
// when deep is set, those attached to its members as well.
// Class-level attributes are yielded first; the rest follow in member order.
func (decl *Declaration) Tags(deep bool) iter.Seq2[Point, string] {
	return func(yield func(Point, string) bool) {
		for _, attachment := range decl.attachments {
			if attachment.Point.Kind != PointClass {
				continue
			}

			for _, tag := range attachment.Tags {
				if !yield(attachment.Point, tag) {
					return
				}
			}
		}

		if !deep {
			return
		}

		for _, attachment := range decl.attachments {
			if attachment.Point.Kind == PointClass {
				continue
			}

			for _, tag := range attachment.Tags {
				if !yield(attachment.Point, tag) {
					return
				}
			}
		}
	}
}

// Methods returns the declared methods.
func (decl *Declaration) Methods() []Method {
	return slices.Clone(decl.methods)
}

// Method looks up a method by name. Method names are case-insensitive.
func (decl *Declaration) Method(name string) (Method, bool) {
	for _, method := range decl.methods {
		if strings.EqualFold(method.Name, name) {
			return method, true
		}
	}

	return Method{}, false
}

// Location returns where the declaration was found.
func (decl *Declaration) Location() SourceLocation {
	return decl.location
}

// String implements fmt.Stringer.
func (decl *Declaration) String() string {
	return string(decl.kind) + " " + decl.QualifiedName()
}

// MarshalJSON implements json.Marshaler.
func (decl *Declaration) MarshalJSON() ([]byte, error) {
	type jsonDeclaration struct {
		Name          string         `json:"name"`
		Namespace     string         `json:"namespace"`
		QualifiedName string         `json:"qualifiedName"`
		Kind          Kind           `json:"kind"`
		Modifiers     []Modifier     `json:"modifiers,omitempty"`
		Parent        string         `json:"parent,omitempty"`
		Interfaces    []string       `json:"interfaces,omitempty"`
		Attachments   []Attachment   `json:"attributes,omitempty"`
		Location      SourceLocation `json:"location"`
	}

	return json.Marshal(jsonDeclaration{
		Name:          decl.name,
		Namespace:     decl.namespace,
		QualifiedName: decl.QualifiedName(),
		Kind:          decl.kind,
		Modifiers:     decl.modifiers,
		Parent:        decl.parent,
		Interfaces:    decl.interfaces,
		Attachments:   decl.attachments,
		Location:      decl.location,
	})
}

// Declarations is a list of declarations.
type Declarations []*Declaration

// Sort sorts the declarations by qualified name.
func (decls Declarations) Sort() Declarations {
	slices.SortStableFunc(decls, func(a, b *Declaration) int {
		return strings.Compare(a.QualifiedName(), b.QualifiedName())
	})

	return decls
}

// QualifiedNames returns the qualified names in list order.
func (decls Declarations) QualifiedNames() []string {
	names := make([]string, len(decls))
	for i, decl := range decls {
		names[i] = decl.QualifiedName()
	}

	return names
}

// All yields the declarations in list order keyed by qualified name.
func (decls Declarations) All() iter.Seq2[string, *Declaration] {
	return func(yield func(string, *Declaration) bool) {
		for _, decl := range decls {
			if !yield(decl.QualifiedName(), decl) {
				return
			}
		}
	}
}
