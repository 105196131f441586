package parser

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/vfs"
)

// Registry routes files to parsers by extension. It is safe for concurrent use.
type Registry struct {
	parsers map[string]LanguageParser
	mu      sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]LanguageParser)}
}

// NewDefaultRegistry returns a registry with every built-in parser registered.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(NewPHPParser())

	return registry
}

// Register adds parser for all of its extensions, replacing any parser already registered for them.
func (registry *Registry) Register(parser LanguageParser) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, ext := range parser.Extensions() {
		registry.parsers[normalizeExtension(ext)] = parser
	}
}

// ParserFor returns the parser registered for the extension of path.
func (registry *Registry) ParserFor(path string) (LanguageParser, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	parser, ok := registry.parsers[normalizeExtension(filepath.Ext(path))]
	if !ok {
		return nil, errors.New(&UnsupportedFileError{Path: path})
	}

	return parser, nil
}

// Supports reports whether a parser is registered for the extension of path.
func (registry *Registry) Supports(path string) bool {
	_, err := registry.ParserFor(path)
	return err == nil
}

// Extensions returns the registered extensions, sorted.
func (registry *Registry) Extensions() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	exts := make([]string, 0, len(registry.parsers))
	for ext := range registry.parsers {
		exts = append(exts, ext)
	}

	slices.Sort(exts)

	return exts
}

// ParseFile reads path from fsys and parses it with the matching parser.
// A panic inside the parser is returned as an error.
func (registry *Registry) ParseFile(fsys vfs.FS, path string) (decls []*declaration.Declaration, err error) {
	parser, err := registry.ParserFor(path)
	if err != nil {
		return nil, err
	}

	src, err := vfs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.New(err)
	}

	defer errors.Recover(func(cause error) {
		decls, err = nil, errors.WithPrefix(cause, "parsing %s", path)
	})

	return parser.Parse(path, src)
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
