package parser_test

import (
	"testing"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/parser"
	"github.com/gruntwork-io/declscan/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingParser struct{}

func (panickingParser) Parse(string, []byte) ([]*declaration.Declaration, error) {
	panic("boom")
}

func (panickingParser) Extensions() []string { return []string{"boom"} }

func (panickingParser) Language() string { return "boom" }

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := parser.NewDefaultRegistry()

	p, err := registry.ParserFor("src/Foo.PHP")
	require.NoError(t, err)
	assert.Equal(t, "php", p.Language())

	_, err = registry.ParserFor("README.md")

	var unsupported *parser.UnsupportedFileError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "README.md", unsupported.Path)

	assert.False(t, registry.Supports("Makefile"))

	registry.Register(panickingParser{})
	assert.Equal(t, []string{".boom", ".php"}, registry.Extensions())
}

func TestRegistryParseFile(t *testing.T) {
	t.Parallel()

	fsys := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(fsys, "/src/Foo.php", []byte("<?php\nnamespace App;\nclass Foo {}\n"), 0o644))
	require.NoError(t, vfs.WriteFile(fsys, "/src/x.boom", []byte("anything"), 0o644))

	registry := parser.NewDefaultRegistry()
	registry.Register(panickingParser{})

	decls, err := registry.ParseFile(fsys, "/src/Foo.php")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, `App\Foo`, decls[0].QualifiedName())
	assert.Equal(t, "/src/Foo.php:3", decls[0].Location().String())

	_, err = registry.ParseFile(fsys, "/src/x.boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = registry.ParseFile(fsys, "/src/Missing.php")
	require.Error(t, err)
}
