package parser

import (
	"fmt"
)

// SyntaxError is returned when a source file cannot be parsed.
type SyntaxError struct {
	Path    string
	Message string
	Line    int
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s on line %d: %s", err.Path, err.Line, err.Message)
}

// UnsupportedFileError is returned when no parser is registered for a file's extension.
type UnsupportedFileError struct {
	Path string
}

func (err *UnsupportedFileError) Error() string {
	return "no parser registered for " + err.Path
}
