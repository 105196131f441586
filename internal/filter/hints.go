package filter

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/declscan/internal/declaration"
)

// GetHint returns a single consolidated hint for a parse error.
func GetHint(code ErrorCode, token, query string, position int) string {
	switch code {
	case ErrorCodeUnexpectedToken:
		return getUnexpectedTokenHint(token)
	case ErrorCodeUnexpectedEOF, ErrorCodeMissingOperand:
		return "The expression is incomplete. Make sure every '!' and '|' has an operand."
	case ErrorCodeIllegalToken:
		return "This character is not recognized. Valid operators: | (intersection), ! (negation), = (attribute)"
	case ErrorCodeMissingValue:
		return "Attribute filters need a value. e.g. 'kind=class' or 'implements=Countable,Serializable'"
	case ErrorCodeUnknownKey:
		return getUnknownKeyHint(token)
	case ErrorCodeInvalidValue:
		return getInvalidValueHint(query, position)
	case ErrorCodeEmptyExpression, ErrorCodeUnknown:
		return ""
	}

	return ""
}

func getUnexpectedTokenHint(token string) string {
	switch token {
	case "=":
		return "The equals sign is used for attribute filters. e.g. 'kind=class'"
	case "|":
		return "The '|' operator intersects two expressions. e.g. 'App\\* | kind=class'"
	}

	return ""
}

func getUnknownKeyHint(key string) string {
	key = strings.ToLower(key)

	for _, known := range AllKeys {
		if strings.HasPrefix(known, key) || strings.HasPrefix(key, known) {
			return fmt.Sprintf("Did you mean '%s'? Supported keys: %s", known, strings.Join(AllKeys, ", "))
		}
	}

	return "Supported keys: " + strings.Join(AllKeys, ", ")
}

func getInvalidValueHint(query string, position int) string {
	before := strings.ReplaceAll(query[:min(max(position, 0), len(query))], " ", "")

	switch {
	case strings.HasSuffix(before, KeyKind+"="):
		return "Supported kinds: " + declaration.AllKinds.String()
	case strings.HasSuffix(before, KeyIs+"="):
		return "Supported flags: abstract, final, instantiable, callable"
	}

	return ""
}
