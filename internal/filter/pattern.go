package filter

import (
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// Subject is the part of a declaration a pattern is matched against.
type Subject int

const (
	// SubjectAuto selects the subject from the shape of the pattern.
	SubjectAuto Subject = iota
	SubjectName
	SubjectNamespace
	SubjectQualifiedName
)

var subjectNames = map[Subject]string{
	SubjectAuto:          "auto",
	SubjectName:          "name",
	SubjectNamespace:     "namespace",
	SubjectQualifiedName: "fqn",
}

func (subject Subject) String() string {
	return subjectNames[subject]
}

// PatternFilter matches a wildcard pattern against the simple name, namespace or qualified name.
//
// With SubjectAuto the subject is picked once from the pattern:
//   - no separator: the simple name;
//   - no wildcard, or a single trailing `\*`: the namespace, with prefix semantics;
//   - anything else: the qualified name.
//
// Namespace prefix semantics accept the namespace equal to the prefix or nested below it,
// so `App\*` accepts `App` and `App\Http` but not `Apple`.
type PatternFilter struct {
	matcher *Matcher
	pattern string
	prefix  string
	subject Subject
}

// NewPatternFilter returns a pattern filter with an auto-selected subject.
func NewPatternFilter(pattern string) (*PatternFilter, error) {
	return NewPatternFilterFor(pattern, SubjectAuto)
}

// NewPatternFilterFor returns a pattern filter pinned to the given subject.
func NewPatternFilterFor(pattern string, subject Subject) (*PatternFilter, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, NewConfigurationError("empty pattern")
	}

	if _, ok := subjectNames[subject]; !ok {
		return nil, NewConfigurationError("invalid pattern subject %d", subject)
	}

	f := &PatternFilter{pattern: pattern}

	if subject == SubjectAuto {
		subject = autoSubject(pattern)
	}

	f.subject = subject

	if subject != SubjectName {
		pattern = declaration.NormalizeName(pattern)
	}

	if subject == SubjectNamespace {
		if prefix, ok := namespacePrefix(pattern); ok {
			f.prefix = prefix
			return f, nil
		}
	}

	matcher, err := CompileMatcher(pattern)
	if err != nil {
		return nil, err
	}

	f.matcher = matcher

	return f, nil
}

// Exact returns a filter accepting exactly the given value.
func Exact(value string) (*PatternFilter, error) {
	return NewPatternFilter(value)
}

// Contains returns a filter accepting values containing substr.
func Contains(substr string) (*PatternFilter, error) {
	return NewPatternFilter(Wildcard + substr + Wildcard)
}

// StartsWith returns a filter accepting values starting with prefix.
func StartsWith(prefix string) (*PatternFilter, error) {
	return NewPatternFilter(prefix + Wildcard)
}

// EndsWith returns a filter accepting values ending with suffix.
func EndsWith(suffix string) (*PatternFilter, error) {
	return NewPatternFilter(Wildcard + suffix)
}

// InNamespace returns a filter accepting declarations in namespace or below it.
func InNamespace(namespace string) (*PatternFilter, error) {
	return NewPatternFilter(strings.TrimRight(namespace, declaration.Separator) + declaration.Separator + Wildcard)
}

// Subject returns the resolved subject.
func (f *PatternFilter) Subject() Subject {
	return f.subject
}

// Accept implements Predicate.
func (f *PatternFilter) Accept(decl *declaration.Declaration, _ string) bool {
	if decl == nil {
		return false
	}

	var subject string

	switch f.subject {
	case SubjectName:
		subject = decl.Name()
	case SubjectNamespace:
		subject = decl.Namespace()
	case SubjectQualifiedName, SubjectAuto:
		subject = decl.QualifiedName()
	}

	if subject == "" {
		return false
	}

	if f.matcher == nil {
		return subject == f.prefix || strings.HasPrefix(subject, f.prefix+declaration.Separator)
	}

	return f.matcher.Match(subject)
}

func (f *PatternFilter) String() string {
	return f.subject.String() + "=" + f.pattern
}

func autoSubject(pattern string) Subject {
	if !strings.Contains(pattern, declaration.Separator) {
		return SubjectName
	}

	if _, ok := namespacePrefix(declaration.NormalizeName(pattern)); ok {
		return SubjectNamespace
	}

	return SubjectQualifiedName
}

// namespacePrefix returns the literal namespace of a wildcard-free pattern or of a `ns\*` pattern.
func namespacePrefix(pattern string) (string, bool) {
	if strings.ContainsAny(pattern, "*?") {
		prefix, ok := strings.CutSuffix(pattern, declaration.Separator+Wildcard)
		if !ok || strings.ContainsAny(prefix, "*?") || prefix == "" {
			return "", false
		}

		return prefix, true
	}

	return strings.TrimSuffix(pattern, declaration.Separator), pattern != ""
}
