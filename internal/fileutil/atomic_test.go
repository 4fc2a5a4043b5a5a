package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, name, entry.Name(), "unexpected file left behind")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pokerhands.hcl")

	require.NoError(t, WriteFileAtomic(path, []byte("log_level = \"info\"\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log_level = \"info\"\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	assertOnlyFile(t, dir, "pokerhands.hcl")
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pokerhands.hcl")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFileAtomicCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "pokerhands.hcl")
	require.NoError(t, WriteFileAtomic(path, []byte("x"), 0o644))
	assert.FileExists(t, path)
}

func TestCreateFileAtomicRefusesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pokerhands.hcl")

	require.NoError(t, CreateFileAtomic(path, []byte("original"), 0o644))

	err := CreateFileAtomic(path, []byte("replacement"), 0o644)
	require.ErrorIs(t, err, os.ErrExist)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	assertOnlyFile(t, dir, "pokerhands.hcl")
}
