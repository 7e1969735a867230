// Package fileutil has the small filesystem helpers the generator needs:
// existence checks that treat "not found" as a plain answer, and recursive
// copy and delete.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrExists        = errors.New("destination already exists")
	ErrSourceMissing = errors.New("source not found")
	ErrUnsupported   = errors.New("source is neither a file nor a directory")
)

// Stat is os.Stat that returns nil, nil when path does not exist.
func Stat(path string) (fs.FileInfo, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return fi, err
}

// Lstat is os.Lstat that returns nil, nil when path does not exist.
func Lstat(path string) (fs.FileInfo, error) {
	fi, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return fi, err
}

// IsDir reports whether path is a directory. Symlinks to directories count
// only when followLinks is set.
func IsDir(path string, followLinks bool) bool {
	stat := Lstat
	if followLinks {
		stat = Stat
	}
	fi, err := stat(path)
	return err == nil && fi != nil && fi.IsDir()
}

// IsFile reports whether path is a regular file (not a symlink).
func IsFile(path string) bool {
	fi, err := Lstat(path)
	return err == nil && fi != nil && fi.Mode().IsRegular()
}

// IsSymlink reports whether path is a symbolic link.
func IsSymlink(path string) bool {
	fi, err := Lstat(path)
	return err == nil && fi != nil && fi.Mode()&fs.ModeSymlink != 0
}

// CopyPath copies a file, or a directory tree recursively, from src to dst.
// When copying a file into a directory, dst must name the new file.
func CopyPath(src, dst string, overwrite bool) error {
	fi, err := Stat(src)
	if err != nil {
		return err
	}
	if fi == nil {
		return fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}

	switch {
	case fi.Mode().IsRegular():
		return CopyFile(src, dst, overwrite)
	case fi.IsDir():
		return CopyDir(src, dst, overwrite)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, src)
	}
}

// CopyDir recursively copies the directory src into dst, creating dst when
// needed. An existing file or symlink at dst is replaced only with overwrite.
func CopyDir(src, dst string, overwrite bool) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}

	dfi, err := Lstat(dst)
	if err != nil {
		return err
	}
	if dfi != nil && !dfi.IsDir() {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrExists, dst)
		}
		if err := DeletePath(dst); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	for _, e := range entries {
		if err := CopyPath(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name()), overwrite); err != nil {
			return err
		}
	}
	return nil
}

// CopyFile copies the regular file src to dst.
func CopyFile(src, dst string, overwrite bool) (err error) {
	sfi, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !sfi.Mode().IsRegular() {
		return fmt.Errorf("source is not a file: %s", src)
	}

	dfi, err := Lstat(dst)
	if err != nil {
		return err
	}
	if dfi != nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrExists, dst)
		}
		if err := DeletePath(dst); err != nil {
			return err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

// DeletePath removes a file, symlink or directory tree. Missing paths are
// not an error.
func DeletePath(path string) error {
	fi, err := Lstat(path)
	if err != nil || fi == nil {
		return err
	}
	return os.RemoveAll(path)
}
