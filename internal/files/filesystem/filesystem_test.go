package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRelPaths(t *testing.T, dir Directory) []string {
	t.Helper()
	var paths []string
	err := dir.Walk(func(f File, err error) error {
		require.NoError(t, err)
		if !f.Info().IsDir() {
			paths = append(paths, filepath.ToSlash(f.RelativePath()))
		}
		return nil
	})
	require.NoError(t, err)
	return paths
}

func TestMemoryFileSystem_WalkIsLexical(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("z/last.csv", "a\n1\n")
	mfs.AddFile("customer_data.csv", "a\n1\n")
	mfs.AddFile("a/first.csv", "a\n1\n")

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	assert.Equal(t, []string{"a/first.csv", "customer_data.csv", "z/last.csv"}, collectRelPaths(t, dir))
}

func TestMemoryFileSystem_OpenContent(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("x.csv", "h\nv\n")

	dir, err := mfs.Open(".")
	require.NoError(t, err)

	err = dir.Walk(func(f File, err error) error {
		if f.Info().IsDir() {
			return nil
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "h\nv\n", string(b))
		assert.Equal(t, int64(4), f.Info().Size())
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryFileSystem_UnreadableFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	boom := errors.New("permission denied")
	mfs.AddUnreadableFile("locked.csv", boom)

	dir, err := mfs.Open("/data")
	require.NoError(t, err)
	err = dir.Walk(func(f File, err error) error {
		if f.Info().IsDir() {
			return nil
		}
		_, openErr := f.Open()
		return openErr
	})
	assert.ErrorIs(t, err, boom)
}

func TestMemoryFileSystem_OpenErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("x.csv", "h\n")

	_, err := mfs.Open("/missing")
	assert.Error(t, err)

	_, err = mfs.Open("x.csv")
	assert.Error(t, err, "opening a file as a directory must fail")

	info, err := mfs.Stat("x.csv")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestMemoryFileSystem_WalkStopsOnError(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.csv", "")
	mfs.AddFile("b.csv", "")

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	stop := errors.New("stop")
	visited := 0
	err = dir.Walk(func(f File, err error) error {
		if f.Info().IsDir() {
			return nil
		}
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestMemoryFileSystem_WalkRecoversPanic(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.csv", "")

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	err = dir.Walk(func(f File, err error) error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestOSFileSystem_Walk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.csv"), []byte("h\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.csv"), []byte("h\n"), 0644))

	fsys := NewOSFileSystem()
	dir, err := fsys.Open(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.csv", "sub/b.csv"}, collectRelPaths(t, dir))
}

func TestOSFileSystem_OpenRejectsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("h\n"), 0644))

	_, err := NewOSFileSystem().Open(file)
	assert.Error(t, err)

	_, err = NewOSFileSystem().Open(filepath.Join(root, "nope"))
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("sub/a.csv", "h\n1\n")

	rc, err := mfs.OpenFile("/data/sub/a.csv")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "h\n1\n", string(content))

	_, err = mfs.OpenFile("/data/sub")
	assert.Error(t, err)
	_, err = mfs.OpenFile("/data/missing.csv")
	assert.Error(t, err)

	root := t.TempDir()
	file := filepath.Join(root, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("h\n"), 0644))
	rc, err = NewOSFileSystem().OpenFile(file)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
}
