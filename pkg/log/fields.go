package log

import (
	"slices"
	"sort"
)

const (
	FieldKeyPath   = "path"
	FieldKeyRoot   = "root"
	FieldKeyFilter = "filter"
	FieldKeyName   = "name"
	FieldKeyCount  = "count"
)

// Fields type, used to pass to `WithFields`.
type Fields map[string]any

// Keys returns the sorted field keys, excluding removeKeys.
func (fields Fields) Keys(removeKeys ...string) []string {
	keys := make([]string, 0, len(fields))

	for key := range fields {
		if !slices.Contains(removeKeys, key) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}
