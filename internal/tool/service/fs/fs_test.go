package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDir_SortedByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid"} {
		if name == "mid" {
			require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	infos, err := NewOSFileSystem().ListDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	assert.Equal(t, []string{"alpha.txt", "mid", "zeta.txt"}, names)
}

func TestListDir_DescribesSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink("target", filepath.Join(dir, "link")))

	infos, err := NewOSFileSystem().ListDir(dir)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "link", infos[0].Name())
	assert.NotZero(t, infos[0].Mode()&os.ModeSymlink)
}

func TestListDir_MissingDirectory(t *testing.T) {
	_, err := NewOSFileSystem().ListDir(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestLinkCount_RegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), LinkCount(info))
}
