package filter

import (
	"fmt"

	"github.com/gruntwork-io/declscan/internal/errors"
)

// ErrorCode categorizes parse errors for hint lookup.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeUnexpectedToken
	ErrorCodeUnexpectedEOF
	ErrorCodeEmptyExpression
	ErrorCodeIllegalToken
	ErrorCodeMissingOperand
	ErrorCodeMissingValue
	ErrorCodeUnknownKey
	ErrorCodeInvalidValue
)

// ParseError represents an error in a filter query.
type ParseError struct {
	Message      string
	Query        string
	TokenLiteral string
	Position     int
	TokenLength  int
	ErrorCode    ErrorCode
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Position, e.Message)
}

// NewParseError creates a new ParseError with the given message and position.
func NewParseError(message string, position int) error {
	return errors.New(ParseError{Message: message, Position: position})
}

// NewParseErrorWithContext creates a new ParseError with full context for rich diagnostics.
func NewParseErrorWithContext(message string, position int, query, tokenLiteral string, code ErrorCode) error {
	return errors.New(ParseError{
		Message:      message,
		Position:     position,
		Query:        query,
		TokenLiteral: tokenLiteral,
		TokenLength:  max(len(tokenLiteral), 1),
		ErrorCode:    code,
	})
}

// ConfigurationError is returned when a predicate is constructed with invalid arguments.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return "invalid filter configuration: " + e.Message
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(format string, args ...any) error {
	return errors.New(ConfigurationError{Message: fmt.Sprintf(format, args...)})
}
