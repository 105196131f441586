package config

import (
	"fmt"
)

// PanicWhileParsingConfigError is returned when decoding a config file panics.
type PanicWhileParsingConfigError struct {
	Cause      error
	ConfigFile string
}

func (err PanicWhileParsingConfigError) Error() string {
	return fmt.Sprintf("recovering panic while parsing %s: %v", err.ConfigFile, err.Cause)
}

func (err PanicWhileParsingConfigError) Unwrap() error {
	return err.Cause
}

// MissingConfigError is returned when an explicitly given config file does not exist.
type MissingConfigError struct {
	Path string
}

func (err MissingConfigError) Error() string {
	return fmt.Sprintf("config file %s does not exist", err.Path)
}
