package filter

// Parser parses a filter query string into an AST.
type Parser struct {
	lexer     *Lexer
	query     string
	errors    []error
	curToken  Token
	peekToken Token
}

// Operator precedence levels
const (
	_ int = iota
	LOWEST
	INTERSECTION // |
	PREFIX       // !
)

// precedences maps token types to their precedence levels
var precedences = map[TokenType]int{
	PIPE: INTERSECTION,
}

// NewParser creates a new Parser for the given query.
func NewParser(query string) *Parser {
	p := &Parser{
		lexer: NewLexer(query),
		query: query,
	}

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// ParseExpression parses and returns an expression from the input.
func (p *Parser) ParseExpression() (Expression, error) {
	if p.curToken.Type == EOF {
		return nil, NewParseErrorWithContext("empty filter query", 0, p.query, "", ErrorCodeEmptyExpression)
	}

	expr := p.parseExpression(LOWEST)

	if expr == nil {
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}

		return nil, NewParseErrorWithContext("failed to parse expression", p.curToken.Position, p.query, p.curToken.Literal, ErrorCodeUnknown)
	}

	if p.curToken.Type != EOF {
		return nil, NewParseErrorWithContext(
			"unexpected token after expression: "+p.curToken.Literal,
			p.curToken.Position, p.query, p.curToken.Literal, ErrorCodeUnexpectedToken,
		)
	}

	return expr, nil
}

// Errors returns any parsing errors that occurred.
func (p *Parser) Errors() []error {
	return p.errors
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// parseExpression is the core Pratt parser loop.
func (p *Parser) parseExpression(precedence int) Expression {
	var leftExpr Expression

	switch p.curToken.Type {
	case BANG:
		leftExpr = p.parsePrefixExpression()
	case IDENT:
		if p.peekToken.Type == EQUAL {
			leftExpr = p.parseAttributeExpression()
			break
		}

		leftExpr = &PatternExpression{Value: p.curToken.Literal, Position: p.curToken.Position}
		p.nextToken()
	case ILLEGAL:
		p.addError("illegal character: "+p.curToken.Literal, ErrorCodeIllegalToken)
		return nil
	case EOF:
		p.addError("unexpected end of input", ErrorCodeUnexpectedEOF)
		return nil
	case PIPE, EQUAL:
		p.addError("unexpected token: "+p.curToken.Literal, ErrorCodeUnexpectedToken)
		return nil
	}

	if leftExpr == nil {
		return nil
	}

	for p.curToken.Type == PIPE && precedence < p.curPrecedence() {
		leftExpr = p.parseInfixExpression(leftExpr)
		if leftExpr == nil {
			return nil
		}
	}

	return leftExpr
}

// parsePrefixExpression parses a prefix expression (e.g., "!kind=interface").
func (p *Parser) parsePrefixExpression() Expression {
	expression := &PrefixExpression{
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	if p.curToken.Type == EOF {
		p.addError("expected expression after "+expression.Operator, ErrorCodeMissingOperand)
		return nil
	}

	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// parseInfixExpression parses an infix expression (e.g., "App\* | kind=class").
func (p *Parser) parseInfixExpression(left Expression) Expression {
	expression := &InfixExpression{
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()

	if p.curToken.Type == EOF {
		p.addError("expected expression after "+expression.Operator, ErrorCodeMissingOperand)
		return nil
	}

	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// parseAttributeExpression parses a key-value term (e.g., "kind=class").
func (p *Parser) parseAttributeExpression() Expression {
	key := p.curToken

	p.nextToken() // EQUAL
	p.nextToken()

	if p.curToken.Type != IDENT {
		p.addError("expected a value after '"+key.Literal+"='", ErrorCodeMissingValue)
		return nil
	}

	expr := &AttributeExpression{
		Key:           key.Literal,
		Value:         p.curToken.Literal,
		KeyPosition:   key.Position,
		ValuePosition: p.curToken.Position,
	}

	p.nextToken()

	return expr
}

// curPrecedence returns the precedence of the current token.
func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return LOWEST
}

// addError adds an error to the parser's error list.
func (p *Parser) addError(msg string, code ErrorCode) {
	p.errors = append(p.errors, NewParseErrorWithContext(msg, p.curToken.Position, p.query, p.curToken.Literal, code))
}
