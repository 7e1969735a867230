package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStat_MissingIsNil(t *testing.T) {
	fi, err := Stat(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Nil(t, fi)

	fi, err = Lstat(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Nil(t, fi)
}

func TestIsDirIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "a")

	require.True(t, IsDir(dir, false))
	require.False(t, IsDir(file, true))
	require.True(t, IsFile(file))
	require.False(t, IsFile(dir))
	require.False(t, IsFile(filepath.Join(dir, "missing")))
}

func TestIsDir_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	require.True(t, IsSymlink(link))
	require.False(t, IsDir(link, false))
	require.True(t, IsDir(link, true))
}

func TestCopyPath_Directory(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "css", "main.css"), "body{}")
	writeFile(t, filepath.Join(src, "logo.png"), "png")
	dst := filepath.Join(t.TempDir(), "out")

	require.NoError(t, CopyPath(src, dst, false))

	data, err := os.ReadFile(filepath.Join(dst, "css", "main.css"))
	require.NoError(t, err)
	require.Equal(t, "body{}", string(data))
	require.True(t, IsFile(filepath.Join(dst, "logo.png")))
}

func TestCopyFile_Overwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	err := CopyFile(src, dst, false)
	require.ErrorIs(t, err, ErrExists)

	require.NoError(t, CopyFile(src, dst, true))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestCopyPath_MissingSource(t *testing.T) {
	err := CopyPath(filepath.Join(t.TempDir(), "nope"), t.TempDir(), true)
	require.ErrorIs(t, err, ErrSourceMissing)
}

func TestDeletePath(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "tree")
	writeFile(t, filepath.Join(tree, "a", "b.txt"), "b")

	require.NoError(t, DeletePath(tree))
	require.False(t, IsDir(tree, true))
	require.NoError(t, DeletePath(tree))
}
