package filter

import (
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// AttributeFilter accepts declarations carrying a set of attributes.
//
// Names without a separator also match the short name of a qualified attribute,
// so `Route` matches `Symfony\Component\Routing\Attribute\Route`.
// With deep search, attributes on methods, properties and constants count as well;
// all attachment points are pooled before the mode is applied.
type AttributeFilter struct {
	required []string
	mode     Mode
	deep     bool
}

// NewAttributeFilter returns a filter requiring all or any of the given attributes.
// An empty set rejects every declaration.
func NewAttributeFilter(mode Mode, deep bool, names ...string) (*AttributeFilter, error) {
	if mode != ModeAll && mode != ModeAny {
		return nil, NewConfigurationError("invalid mode %d", mode)
	}

	return &AttributeFilter{required: dedupeNames(names), mode: mode, deep: deep}, nil
}

// HasAttribute returns a filter requiring a single class-level attribute.
func HasAttribute(name string) (*AttributeFilter, error) {
	return NewAttributeFilter(ModeAll, false, name)
}

// Accept implements Predicate.
func (f *AttributeFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil {
		return false
	}

	return matchTags(decl, f.deep, f.mode, len(f.required), func(i int, tag string) bool {
		return attributeNameMatches(f.required[i], tag)
	})
}

func (f *AttributeFilter) String() string {
	return attributeKey(f.mode, f.deep) + "=" + strings.Join(f.required, ",")
}

// AttributePatternFilter is AttributeFilter with wildcard patterns instead of names.
// Patterns without a separator are matched against the short attribute name.
type AttributePatternFilter struct {
	matchers  []*Matcher
	qualified []bool
	mode      Mode
	deep      bool
}

// NewAttributePatternFilter returns a filter requiring all or any of the given patterns.
// An empty set rejects every declaration.
func NewAttributePatternFilter(mode Mode, deep bool, patterns ...string) (*AttributePatternFilter, error) {
	if mode != ModeAll && mode != ModeAny {
		return nil, NewConfigurationError("invalid mode %d", mode)
	}

	f := &AttributePatternFilter{mode: mode, deep: deep}

	for _, pattern := range dedupePatterns(patterns) {
		matcher, err := CompileMatcher(pattern)
		if err != nil {
			return nil, err
		}

		f.matchers = append(f.matchers, matcher)
		f.qualified = append(f.qualified, strings.Contains(pattern, declaration.Separator))
	}

	return f, nil
}

// Accept implements Predicate.
func (f *AttributePatternFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil {
		return false
	}

	return matchTags(decl, f.deep, f.mode, len(f.matchers), func(i int, tag string) bool {
		if !f.qualified[i] {
			_, tag = declaration.SplitName(tag)
		}

		return tag != "" && f.matchers[i].Match(tag)
	})
}

func (f *AttributePatternFilter) String() string {
	patterns := make([]string, len(f.matchers))
	for i, matcher := range f.matchers {
		patterns[i] = matcher.String()
	}

	return attributeKey(f.mode, f.deep) + "=" + strings.Join(patterns, ",")
}

// dedupePatterns drops empty and repeated patterns. Matchers are case-sensitive, so patterns
// differing only in case are kept.
func dedupePatterns(patterns []string) []string {
	deduped := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))

	for _, pattern := range patterns {
		pattern = declaration.NormalizeName(pattern)
		if pattern == "" {
			continue
		}

		if _, ok := seen[pattern]; ok {
			continue
		}

		seen[pattern] = struct{}{}
		deduped = append(deduped, pattern)
	}

	return deduped
}

// matchTags scans the attributes of decl once, stopping as soon as the outcome is known.
// In ModeAll each of the required elements may be satisfied at a different attachment point.
func matchTags(decl *declaration.Declaration, deep bool, mode Mode, required int, match func(i int, tag string) bool) bool {
	if required == 0 {
		return false
	}

	if mode == ModeAny {
		for _, tag := range decl.Tags(deep) {
			for i := range required {
				if match(i, tag) {
					return true
				}
			}
		}

		return false
	}

	found := make([]bool, required)
	remaining := required

	for _, tag := range decl.Tags(deep) {
		for i := range required {
			if found[i] || !match(i, tag) {
				continue
			}

			found[i] = true

			if remaining--; remaining == 0 {
				return true
			}
		}
	}

	return false
}

func attributeNameMatches(required, tag string) bool {
	if strings.Contains(required, declaration.Separator) {
		return declaration.EqualNames(required, tag)
	}

	_, short := declaration.SplitName(tag)

	return strings.EqualFold(required, short)
}

func attributeKey(mode Mode, deep bool) string {
	key := "attribute"
	if deep {
		key = "deep-" + key
	}

	if mode == ModeAny {
		key += "-any"
	}

	return key
}
