package filter

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	IDENT
	BANG
	PIPE
	EQUAL
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "IDENT",
	BANG:    "!",
	PIPE:    "|",
	EQUAL:   "=",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// Token is a lexical token with its byte offset in the query.
type Token struct {
	Literal  string
	Type     TokenType
	Position int
}

// NewToken creates a new Token.
func NewToken(tokenType TokenType, literal string, position int) Token {
	return Token{Type: tokenType, Literal: literal, Position: position}
}
