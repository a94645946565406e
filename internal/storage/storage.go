// Package storage performs the local filesystem side of a download run.
//
// Writes are deliberately plain: the destination is truncated and written in place,
// a failure midway may leave a truncated file behind.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	dirMode  fs.FileMode = 0755
	fileMode fs.FileMode = 0644
)

// EnsureDir creates the directory including all parents.
// An already existing directory is not an error, created reports whether anything new was made.
func EnsureDir(path string) (created bool, err error) {
	stat, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if !stat.IsDir() {
			return false, fmt.Errorf("path exists but is not a directory: %s", path)
		}
		return false, nil
	case !errors.Is(statErr, fs.ErrNotExist):
		return false, statErr
	}
	if err = os.MkdirAll(path, dirMode); err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether anything is present at the given path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// WriteFile replaces the content at path with data, creating the file if needed.
func WriteFile(path string, data []byte) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = file.Write(data)
	return
}
