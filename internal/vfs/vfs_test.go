package vfs_test

import (
	"os"
	"testing"

	"github.com/gruntwork-io/declscan/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	memFS := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(memFS, "/src/a/Foo.php", []byte("<?php"), 0o644))

	exists, err := vfs.FileExists(memFS, "/src/a/Foo.php")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = vfs.FileExists(memFS, "/src/missing.php")
	require.NoError(t, err)
	assert.False(t, exists)

	isDir, err := vfs.IsDir(memFS, "/src/a")
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestReadWriteFile(t *testing.T) {
	t.Parallel()

	memFS := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(memFS, "/x/y/z.php", []byte("content"), 0o644))

	data, err := vfs.ReadFile(memFS, "/x/y/z.php")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestWalkIsLexical(t *testing.T) {
	t.Parallel()

	memFS := vfs.NewMemMapFS()
	for _, path := range []string{"/r/b.php", "/r/a/c.php", "/r/a.php"} {
		require.NoError(t, vfs.WriteFile(memFS, path, nil, 0o644))
	}

	var files []string

	err := vfs.Walk(memFS, "/r", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			files = append(files, path)
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/r/a/c.php", "/r/a.php", "/r/b.php"}, files)
}

func TestOSFSIsReadOnly(t *testing.T) {
	t.Parallel()

	err := vfs.WriteFile(vfs.NewOSFS(), t.TempDir()+"/file.php", []byte("x"), 0o644)
	require.Error(t, err)
}
