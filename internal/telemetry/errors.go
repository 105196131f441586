package telemetry

import (
	"fmt"
	"strings"
)

// ErrorMissingEnvVariable error for missing environment variable.
type ErrorMissingEnvVariable struct {
	Vars []string
}

func (e *ErrorMissingEnvVariable) Error() string {
	return "missing environment variable: " + strings.Join(e.Vars, ", ")
}

// ErrorInvalidExporter is returned for an exporter name that is not recognized.
type ErrorInvalidExporter struct {
	Kind string
	Name string
}

func (e *ErrorInvalidExporter) Error() string {
	return fmt.Sprintf("invalid %s exporter %q", e.Kind, e.Name)
}
