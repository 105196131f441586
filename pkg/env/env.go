// Package env reads typed settings from a snapshot of environment variables.
package env

import (
	"strconv"
	"strings"
)

// Prefix is prepended to every setting name to form its environment variable.
const Prefix = "DECLSCAN_"

// Key returns the environment variable for a setting name, e.g. `log-level` becomes `DECLSCAN_LOG_LEVEL`.
func Key(name string) string {
	return Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Environ is a snapshot of environment variables.
type Environ map[string]string

// Parse builds an Environ from `key=value` pairs as returned by os.Environ.
func Parse(envs []string) Environ {
	environ := make(Environ, len(envs))

	for _, pair := range envs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}

		environ[key] = val
	}

	return environ
}

// Lookup returns the value of key with surrounding spaces trimmed.
// A variable set to an empty value is reported as absent.
func (environ Environ) Lookup(key string) (string, bool) {
	val := strings.TrimSpace(environ[key])
	return val, val != ""
}

// Bool returns the value of key parsed as a boolean, or fallback when it is absent or malformed.
func (environ Environ) Bool(key string, fallback bool) bool {
	if strVal, ok := environ.Lookup(key); ok {
		if val, err := strconv.ParseBool(strVal); err == nil {
			return val
		}
	}

	return fallback
}

// Int returns the value of key parsed as an integer, or fallback when it is absent or malformed.
func (environ Environ) Int(key string, fallback int) int {
	if strVal, ok := environ.Lookup(key); ok {
		if val, err := strconv.Atoi(strVal); err == nil {
			return val
		}
	}

	return fallback
}

// String returns the value of key, or fallback when it is absent.
func (environ Environ) String(key, fallback string) string {
	if val, ok := environ.Lookup(key); ok {
		return val
	}

	return fallback
}

// StringSlice returns the comma-separated items of key with empty items dropped,
// or fallback when it is absent.
func (environ Environ) StringSlice(key string, fallback []string) []string {
	strVal, ok := environ.Lookup(key)
	if !ok {
		return fallback
	}

	var vals []string

	for item := range strings.SplitSeq(strVal, ",") {
		if item = strings.TrimSpace(item); item != "" {
			vals = append(vals, item)
		}
	}

	return vals
}
