package discovery

import (
	"path"
	"strings"

	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/mattn/go-zglob"
)

// excludes holds the exclude globs. A pattern without a slash is matched against the base name
// of every path, so `*Test.php` excludes test files at any depth; any other pattern is matched
// against the slash-separated path relative to the root, with `**` crossing directories.
type excludes []string

func newExcludes(patterns []string) (excludes, error) {
	out := make(excludes, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		pattern = strings.TrimPrefix(strings.TrimSuffix(pattern, "/"), "./")

		if _, err := zglob.Match(pattern, ""); err != nil {
			return nil, errors.New(ExcludePatternError{Pattern: pattern, Err: err})
		}

		out = append(out, pattern)
	}

	return out, nil
}

// match reports whether rel, a slash-separated path relative to a root, is excluded.
func (patterns excludes) match(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}

	base := path.Base(rel)

	for _, pattern := range patterns {
		subject := rel
		if !strings.Contains(pattern, "/") {
			subject = base
		}

		if ok, _ := zglob.Match(pattern, subject); ok {
			return true
		}
	}

	return false
}
