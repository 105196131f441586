package discovery

import (
	"fmt"

	"github.com/gruntwork-io/declscan/internal/errors"
)

// RootError is returned when a discovery root does not exist.
type RootError struct {
	Path string
}

func (err RootError) Error() string {
	return fmt.Sprintf("discovery root %s does not exist", err.Path)
}

// NewRootError creates a new RootError for path.
func NewRootError(path string) error {
	return errors.New(RootError{Path: path})
}

// ExcludePatternError is returned when an exclude glob cannot be compiled.
type ExcludePatternError struct {
	Err     error
	Pattern string
}

func (err ExcludePatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", err.Pattern, err.Err)
}

func (err ExcludePatternError) Unwrap() error {
	return err.Err
}
