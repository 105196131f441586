package pipeline

import (
	"fmt"

	"github.com/gruntwork-io/declscan/internal/errors"
)

// ConfigurationError is returned when a pipeline is built from a nil source or a nil filter.
// It is raised before any traversal begins.
type ConfigurationError struct {
	Message string
}

func (err ConfigurationError) Error() string {
	return "invalid pipeline configuration: " + err.Message
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(format string, args ...any) error {
	return errors.New(ConfigurationError{Message: fmt.Sprintf(format, args...)})
}
