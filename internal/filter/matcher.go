package filter

import (
	"strings"

	"github.com/gobwas/glob"
)

// Wildcard matches any run of characters, including none.
const Wildcard = "*"

// Strategy is the matching algorithm chosen for a pattern.
type Strategy int

// Strategies ordered cheapest first.
const (
	StrategyExact Strategy = iota
	StrategyPrefix
	StrategySuffix
	StrategyContains
	StrategyGlob
)

var strategyNames = map[Strategy]string{
	StrategyExact:    "exact",
	StrategyPrefix:   "prefix",
	StrategySuffix:   "suffix",
	StrategyContains: "contains",
	StrategyGlob:     "glob",
}

func (strategy Strategy) String() string {
	return strategyNames[strategy]
}

// Classify returns the cheapest strategy able to evaluate pattern.
func Classify(pattern string) Strategy {
	if strings.Contains(pattern, "?") {
		return StrategyGlob
	}

	count := strings.Count(pattern, Wildcard)

	switch {
	case count == 0:
		return StrategyExact
	case count == 1 && strings.HasSuffix(pattern, Wildcard):
		return StrategyPrefix
	case count == 1 && strings.HasPrefix(pattern, Wildcard):
		return StrategySuffix
	case count == 2 && len(pattern) >= 2 && strings.HasPrefix(pattern, Wildcard) && strings.HasSuffix(pattern, Wildcard):
		return StrategyContains
	}

	return StrategyGlob
}

// Matcher matches candidate strings against one wildcard pattern.
// The strategy is fixed when the Matcher is compiled.
type Matcher struct {
	glob     glob.Glob
	pattern  string
	literal  string
	strategy Strategy
}

// CompileMatcher classifies pattern and prepares it for matching.
func CompileMatcher(pattern string) (*Matcher, error) {
	matcher := &Matcher{
		pattern:  pattern,
		strategy: Classify(pattern),
	}

	switch matcher.strategy {
	case StrategyExact:
		matcher.literal = pattern
	case StrategyPrefix:
		matcher.literal = strings.TrimSuffix(pattern, Wildcard)
	case StrategySuffix:
		matcher.literal = strings.TrimPrefix(pattern, Wildcard)
	case StrategyContains:
		matcher.literal = pattern[1 : len(pattern)-1]
	case StrategyGlob:
		compiled, err := glob.Compile(QuoteGlob(pattern))
		if err != nil {
			return nil, NewConfigurationError("invalid pattern %q: %v", pattern, err)
		}

		matcher.glob = compiled
	}

	return matcher, nil
}

// Match reports whether str matches the pattern.
func (matcher *Matcher) Match(str string) bool {
	switch matcher.strategy {
	case StrategyExact:
		return str == matcher.literal
	case StrategyPrefix:
		return strings.HasPrefix(str, matcher.literal)
	case StrategySuffix:
		return strings.HasSuffix(str, matcher.literal)
	case StrategyContains:
		return strings.Contains(str, matcher.literal)
	case StrategyGlob:
		return matcher.glob.Match(str)
	}

	return false
}

// Strategy returns the strategy chosen for the pattern.
func (matcher *Matcher) Strategy() Strategy {
	return matcher.strategy
}

func (matcher *Matcher) String() string {
	return matcher.pattern
}

// QuoteGlob escapes every glob meta character in pattern except `*` and `?`,
// so that namespace separators and brackets are matched literally.
func QuoteGlob(pattern string) string {
	var sb strings.Builder

	sb.Grow(len(pattern))

	for _, ch := range pattern {
		switch ch {
		case '\\', '[', ']', '{', '}':
			sb.WriteRune('\\')
		}

		sb.WriteRune(ch)
	}

	return sb.String()
}
