package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "manifest.yaml")

	require.NoError(t, os.WriteFile(src, []byte("title: Museum\n"), 0o644))

	dst := filepath.Join(dir, "copy.yaml")
	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "title: Museum\n", string(got))
}

func TestCopyFileMissingSource(t *testing.T) {
	err := CopyFile(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompareGoldenFileNoOutput(t *testing.T) {
	CompareGoldenFile(t, Golden{Name: "does_not_exist"})
}
