package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_RelativeToCWD(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsureDir("storage", "Foodtb_bk")
	require.NoError(t, err)

	want := filepath.Join(tmp, "storage", "Foodtb_bk")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_Absolute(t *testing.T) {
	root := t.TempDir()

	got, err := EnsureDir(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocker"), []byte("x"), 0o600))

	_, err := EnsureDir(root, "blocker", "child")
	require.Error(t, err)
}

func TestSafeJoin(t *testing.T) {
	root := filepath.FromSlash("/srv/objects")

	got, err := SafeJoin(root, "food-images/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "food-images", "1.jpg"), got)

	got, err = SafeJoin(root, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), got)

	_, err = SafeJoin(root, "")
	require.Error(t, err)
	_, err = SafeJoin(root, "..")
	require.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a", "b", "c.bin")

	require.NoError(t, WriteFileAtomic(path, []byte("hello")))
	require.NoError(t, WriteFileAtomic(path, []byte("world")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "world", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
