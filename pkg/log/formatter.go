package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/sirupsen/logrus"
)

const (
	PrettyFormatName   = "pretty"
	KeyValueFormatName = "key-value"
	JSONFormatName     = "json"

	defaultTimestampFormat = "15:04:05.000"
)

// AllFormatNames lists the names accepted by ParseFormat.
var AllFormatNames = []string{PrettyFormatName, KeyValueFormatName, JSONFormatName}

// ParseFormat returns the formatter registered under the given name.
// Colors are disabled for the pretty format when noColor is set or out is not a terminal.
func ParseFormat(name string, noColor bool, out io.Writer) (logrus.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PrettyFormatName:
		return NewPrettyFormatter(noColor || !IsTerminal(out)), nil
	case KeyValueFormatName:
		return &logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  defaultTimestampFormat,
			QuoteEmptyFields: true,
		}, nil
	case JSONFormatName:
		return &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "msg",
			},
		}, nil
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: %s", name, strings.Join(AllFormatNames, ", "))
}

// WithFormat sets the formatter registered under the given name.
// An unknown name leaves the current formatter in place.
func WithFormat(name string, noColor bool) Option {
	return func(logger *logger) {
		formatter, err := ParseFormat(name, noColor, logger.Logger.Out)
		if err != nil {
			return
		}

		logger.Logger.SetFormatter(formatter)
	}
}

// IsTerminal reports whether the given writer is attached to a terminal.
func IsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

var levelColors = map[Level]string{
	ErrorLevel: "red",
	WarnLevel:  "yellow",
	InfoLevel:  "green",
	DebugLevel: "blue+h",
	TraceLevel: "white",
}

// PrettyFormatter renders entries as `time LEVEL message key=value ...` with optional colors.
type PrettyFormatter struct {
	TimestampFormat string
	DisableColors   bool

	levelColors map[Level]func(string) string
	keyColor    func(string) string
	timeColor   func(string) string
}

// NewPrettyFormatter returns a new PrettyFormatter instance with default values.
func NewPrettyFormatter(disableColors bool) *PrettyFormatter {
	formatter := &PrettyFormatter{
		TimestampFormat: defaultTimestampFormat,
		DisableColors:   disableColors,
		levelColors:     make(map[Level]func(string) string, len(levelColors)),
		keyColor:        ansi.ColorFunc("cyan"),
		timeColor:       ansi.ColorFunc("black+h"),
	}

	for level, style := range levelColors {
		formatter.levelColors[level] = ansi.ColorFunc(style)
	}

	return formatter
}

// Format implements logrus.Formatter.
func (formatter *PrettyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	level := FromLogrusLevel(entry.Level)
	timestamp := entry.Time.Format(formatter.TimestampFormat)
	levelName := strings.ToUpper(fmt.Sprintf("%-6s", level))

	if !formatter.DisableColors {
		timestamp = formatter.timeColor(timestamp)

		if colorize, ok := formatter.levelColors[level]; ok {
			levelName = colorize(levelName)
		}
	}

	fmt.Fprintf(buf, "%s %s%s", timestamp, levelName, strings.TrimSuffix(entry.Message, "\n"))

	fields := Fields(entry.Data)
	for _, key := range fields.Keys() {
		name := key
		if !formatter.DisableColors {
			name = formatter.keyColor(key)
		}

		fmt.Fprintf(buf, " %s=%v", name, fields[key])
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
