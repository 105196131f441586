package filter_test

import (
	"testing"

	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseError(t *testing.T, query string) *filter.ParseError {
	t.Helper()

	_, err := filter.Parse(query, nil)
	require.Error(t, err)

	var parseErr filter.ParseError
	require.True(t, errors.As(err, &parseErr))

	return &parseErr
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	diagnostic := filter.FormatDiagnostic(parseError(t, "kind=struct"), 0, false)

	expected := "Filter parsing error: invalid kind struct\n" +
		" --> --filter 'kind=struct'\n" +
		"\n" +
		"     kind=struct\n" +
		"          ^^^^^^\n" +
		"\n" +
		"  hint: Supported kinds: class, interface, trait, enum, function\n"

	assert.Equal(t, expected, diagnostic)
}

func TestFormatDiagnosticIndexAndColor(t *testing.T) {
	t.Parallel()

	parseErr := parseError(t, "Foo |")

	plain := filter.FormatDiagnostic(parseErr, 2, false)
	assert.Contains(t, plain, " --> --filter[2] 'Foo |'")
	assert.Contains(t, plain, "          ^\n")

	colored := filter.FormatDiagnostic(parseErr, 2, true)
	assert.Contains(t, colored, "\x1b[")
}

func TestGetHint(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		token    string
		query    string
		contains string
		code     filter.ErrorCode
		position int
	}{
		{name: "unknown key prefix", code: filter.ErrorCodeUnknownKey, token: "impl", contains: "Did you mean 'implements'?"},
		{name: "unknown key", code: filter.ErrorCodeUnknownKey, token: "color", contains: "Supported keys: name, namespace"},
		{name: "flags", code: filter.ErrorCodeInvalidValue, query: "is = lazy", position: 5, contains: "Supported flags"},
		{name: "equals", code: filter.ErrorCodeUnexpectedToken, token: "=", contains: "attribute filters"},
		{name: "operand", code: filter.ErrorCodeMissingOperand, contains: "incomplete"},
		{name: "empty", code: filter.ErrorCodeEmptyExpression},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			hint := filter.GetHint(tc.code, tc.token, tc.query, tc.position)
			if tc.contains == "" {
				assert.Empty(t, hint)
				return
			}

			assert.Contains(t, hint, tc.contains)
		})
	}
}
