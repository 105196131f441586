package filter

// Expression is the interface that all AST nodes must implement.
type Expression interface {
	// expressionNode is a marker method to distinguish expression nodes.
	expressionNode()
	// String returns a string representation of the expression for debugging.
	String() string
}

// PatternExpression is a bare pattern, e.g. `*Controller` or `App\Http\*`.
type PatternExpression struct {
	Value    string
	Position int
}

func (e *PatternExpression) expressionNode() {}
func (e *PatternExpression) String() string  { return e.Value }

// AttributeExpression is a key-value term, e.g. `kind=class` or `implements=Countable,Serializable`.
type AttributeExpression struct {
	Key           string
	Value         string
	KeyPosition   int
	ValuePosition int
}

func (e *AttributeExpression) expressionNode() {}
func (e *AttributeExpression) String() string  { return e.Key + "=" + e.Value }

// Values returns the comma-separated values with surrounding spaces removed. Empty items are dropped.
func (e *AttributeExpression) Values() []string {
	return splitValues(e.Value)
}

// PrefixExpression is a prefix operator applied to an expression, e.g. `!kind=interface`.
type PrefixExpression struct {
	Right    Expression
	Operator string
}

func (e *PrefixExpression) expressionNode() {}
func (e *PrefixExpression) String() string  { return e.Operator + e.Right.String() }

// InfixExpression is a binary operator between two expressions, e.g. `App\* | kind=class`.
type InfixExpression struct {
	Left     Expression
	Right    Expression
	Operator string
}

func (e *InfixExpression) expressionNode() {}
func (e *InfixExpression) String() string {
	return e.Left.String() + " " + e.Operator + " " + e.Right.String()
}
