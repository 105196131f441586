package declaration

import (
	"slices"
	"strings"

	"github.com/gruntwork-io/declscan/internal/errors"
)

// Kind is the type of a discovered declaration.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindTrait     Kind = "trait"
	KindEnum      Kind = "enum"
	KindFunction  Kind = "function"
)

// AllKinds lists every declaration kind in a stable order.
var AllKinds = Kinds{KindClass, KindInterface, KindTrait, KindEnum, KindFunction}

// ParseKind parses a kind name case-insensitively.
func ParseKind(str string) (Kind, error) {
	for _, kind := range AllKinds {
		if strings.EqualFold(string(kind), str) {
			return kind, nil
		}
	}

	return "", errors.Errorf("invalid kind %q, supported kinds: %s", str, AllKinds)
}

// IsValid reports whether the kind is one of AllKinds.
func (kind Kind) IsValid() bool {
	return slices.Contains(AllKinds, kind)
}

// Kinds is a set of kinds. Order is irrelevant for membership.
type Kinds []Kind

// Contains reports whether kind is in the set.
func (kinds Kinds) Contains(kind Kind) bool {
	return slices.Contains(kinds, kind)
}

func (kinds Kinds) String() string {
	strs := make([]string, len(kinds))
	for i, kind := range kinds {
		strs[i] = string(kind)
	}

	return strings.Join(strs, ", ")
}

// Modifier is a class modifier.
type Modifier string

const (
	ModifierAbstract Modifier = "abstract"
	ModifierFinal    Modifier = "final"
	ModifierReadonly Modifier = "readonly"
)
