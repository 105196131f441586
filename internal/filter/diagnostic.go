package filter

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
)

var (
	boldRed  = ansi.ColorFunc("red+b")
	boldBlue = ansi.ColorFunc("blue+b")
	boldCyan = ansi.ColorFunc("cyan+b")
)

// FormatDiagnostic renders a parse error as the query with a caret under the offending position,
// followed by a hint when one is available.
func FormatDiagnostic(err *ParseError, filterIndex int, useColor bool) string {
	paint := func(colorize func(string) string, str string) string {
		if useColor {
			return colorize(str)
		}

		return str
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Filter parsing error: %s\n", err.Message)

	if filterIndex > 0 {
		fmt.Fprintf(&sb, "%s--filter[%d] '%s'\n", paint(boldBlue, " --> "), filterIndex, err.Query)
	} else {
		fmt.Fprintf(&sb, "%s--filter '%s'\n", paint(boldBlue, " --> "), err.Query)
	}

	sb.WriteString("\n")

	const indent = "     "

	position := min(max(err.Position, 0), len(err.Query))
	underline := strings.Repeat("^", max(min(err.TokenLength, len(err.Query)-position), 1))

	fmt.Fprintf(&sb, "%s%s\n", indent, err.Query)
	fmt.Fprintf(&sb, "%s%s%s\n", indent, strings.Repeat(" ", position), paint(boldRed, underline))

	if hint := GetHint(err.ErrorCode, err.TokenLiteral, err.Query, err.Position); hint != "" {
		fmt.Fprintf(&sb, "\n  %s %s\n", paint(boldCyan, "hint:"), hint)
	}

	return sb.String()
}
