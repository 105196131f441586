// Package parser extracts declarations from source files.
//
// Parsers are CGO-free. PHP sources are parsed with github.com/VKCOM/php-parser and only the
// declarations, their supertypes, attributes and method signatures are kept. Bodies are skipped.
package parser

import (
	"github.com/gruntwork-io/declscan/internal/declaration"
)

// LanguageParser extracts the declarations of a single source file.
type LanguageParser interface {
	// Parse returns the declarations found in src in source order.
	// path is recorded in each declaration's location.
	Parse(path string, src []byte) ([]*declaration.Declaration, error)

	// Extensions returns the file extensions this parser handles, with the leading dot.
	Extensions() []string

	// Language returns the language identifier, e.g. "php".
	Language() string
}

var _ LanguageParser = (*PHPParser)(nil)
