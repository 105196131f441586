package filter

import (
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// ImplementsFilter accepts classes and enums implementing a set of interfaces.
// Interfaces and traits never implement anything, so they are always rejected.
type ImplementsFilter struct {
	required []string
	mode     Mode
}

// NewImplementsFilter returns a filter requiring all or any of the given interfaces.
// Duplicate names are dropped. An empty set rejects every declaration.
func NewImplementsFilter(mode Mode, interfaces ...string) (*ImplementsFilter, error) {
	if mode != ModeAll && mode != ModeAny {
		return nil, NewConfigurationError("invalid mode %d", mode)
	}

	return &ImplementsFilter{
		required: dedupeNames(interfaces),
		mode:     mode,
	}, nil
}

// Implements returns a filter requiring a single interface.
func Implements(iface string) (*ImplementsFilter, error) {
	return NewImplementsFilter(ModeAll, iface)
}

// ImplementsAll returns a filter requiring every given interface.
func ImplementsAll(interfaces ...string) (*ImplementsFilter, error) {
	return NewImplementsFilter(ModeAll, interfaces...)
}

// ImplementsAny returns a filter requiring at least one of the given interfaces.
func ImplementsAny(interfaces ...string) (*ImplementsFilter, error) {
	return NewImplementsFilter(ModeAny, interfaces...)
}

// Accept implements Predicate.
func (f *ImplementsFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil {
		return false
	}

	if kind := decl.Kind(); kind != declaration.KindClass && kind != declaration.KindEnum {
		return false
	}

	return matchSet(len(f.required), f.mode, decl.InterfaceCount(), func(i int) bool {
		return decl.ImplementsDirectly(f.required[i])
	})
}

func (f *ImplementsFilter) String() string {
	key := "implements"
	if f.mode == ModeAny {
		key += "-any"
	}

	return key + "=" + strings.Join(f.required, ",")
}

// matchSet evaluates a required set of size required against a candidate set of size available.
// has reports whether the i-th required element is present.
// In ModeAll a required set larger than the candidate set is rejected before has is called.
func matchSet(required int, mode Mode, available int, has func(i int) bool) bool {
	if required == 0 {
		return false
	}

	if mode == ModeAny {
		for i := range required {
			if has(i) {
				return true
			}
		}

		return false
	}

	if required > available {
		return false
	}

	for i := range required {
		if !has(i) {
			return false
		}
	}

	return true
}

func dedupeNames(names []string) []string {
	deduped := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		name = declaration.NormalizeName(name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		deduped = append(deduped, name)
	}

	return deduped
}
