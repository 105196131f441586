package filter

import (
	"strings"
	"unicode"
)

// Lexer tokenizes a filter query string.
type Lexer struct {
	input        string // The input string being tokenized
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position in input (after current char)
	ch           byte   // Current char under examination
}

// NewLexer creates a new Lexer for the given input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()

	return l
}

// NextToken reads and returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	startPosition := l.position

	switch l.ch {
	case 0:
		return NewToken(EOF, "", startPosition)
	case '!':
		l.readChar()
		return NewToken(BANG, "!", startPosition)
	case '|':
		l.readChar()
		return NewToken(PIPE, "|", startPosition)
	case '=':
		l.readChar()
		return NewToken(EQUAL, "=", startPosition)
	}

	if !isIdentifierChar(l.ch) {
		literal := string(l.ch)
		l.readChar()

		return NewToken(ILLEGAL, literal, startPosition)
	}

	return NewToken(IDENT, l.readIdentifier(), startPosition)
}

// readChar advances the lexer's position and updates the current character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for "NUL", signifies end of input
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1

		return
	}

	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
}

// skipWhitespace skips over whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && unicode.IsSpace(rune(l.ch)) {
		l.readChar()
	}
}

// readIdentifier reads an identifier, which may contain inner spaces. Trailing whitespace is trimmed.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentifierChar(l.ch) {
		l.readChar()
	}

	return strings.TrimSpace(l.input[position:l.position])
}

// isSpecialChar returns true if the character is an operator or the end of input.
func isSpecialChar(ch byte) bool {
	return ch == '!' || ch == '|' || ch == '=' || ch == 0
}

// isIdentifierChar returns true if the character can be part of an identifier.
// Control characters other than whitespace are illegal.
func isIdentifierChar(ch byte) bool {
	if isSpecialChar(ch) {
		return false
	}

	return ch >= ' ' || unicode.IsSpace(rune(ch))
}
