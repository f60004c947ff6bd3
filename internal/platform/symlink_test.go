package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopySymlinkKeepsRelativeTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require developer mode on Windows")
	}
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "layout.liquid"), []byte("{{ content }}"), 0644))
	require.NoError(t, os.Symlink("layout.liquid", filepath.Join(srcDir, "theme.liquid")))
	require.NoError(t, os.WriteFile(filepath.Join(dstDir, "layout.liquid"), []byte("{{ content }}"), 0644))

	require.NoError(t, CopySymlink(filepath.Join(srcDir, "theme.liquid"), filepath.Join(dstDir, "theme.liquid")))

	target, err := os.Readlink(filepath.Join(dstDir, "theme.liquid"))
	require.NoError(t, err)
	assert.Equal(t, "layout.liquid", target)

	data, err := os.ReadFile(filepath.Join(dstDir, "theme.liquid"))
	require.NoError(t, err)
	assert.Equal(t, "{{ content }}", string(data))
}

func TestCopySymlinkMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopySymlink(filepath.Join(dir, "nope"), filepath.Join(dir, "out"))
	assert.Error(t, err)
}
