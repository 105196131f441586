package declaration

import "strings"

// Separator separates namespace segments in qualified names.
const Separator = `\`

// NormalizeName strips a leading separator from a qualified name.
func NormalizeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), Separator)
}

// EqualNames compares two qualified names the way the source language does:
// case-insensitively, ignoring a leading separator.
func EqualNames(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}

// SplitName splits a qualified name into its namespace and simple name.
func SplitName(qualifiedName string) (namespace, name string) {
	qualifiedName = NormalizeName(qualifiedName)

	idx := strings.LastIndex(qualifiedName, Separator)
	if idx < 0 {
		return "", qualifiedName
	}

	return qualifiedName[:idx], qualifiedName[idx+len(Separator):]
}

// JoinName joins a namespace and a simple name into a qualified name.
func JoinName(namespace, name string) string {
	namespace = strings.Trim(namespace, Separator)
	if namespace == "" {
		return name
	}

	return namespace + Separator + name
}

func indexKey(qualifiedName string) string {
	return strings.ToLower(NormalizeName(qualifiedName))
}
