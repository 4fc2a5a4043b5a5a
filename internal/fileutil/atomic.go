// Package fileutil provides file system utilities.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces filename with data. The content is written to a
// temporary file in the same directory and renamed into place, so readers
// see either the old file or the complete new one.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(filename, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// CreateFileAtomic is WriteFileAtomic for a file that must not exist yet.
// It returns an error wrapping os.ErrExist when filename is already present.
func CreateFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(filename, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	// A hard link fails if the target exists, unlike rename.
	if err := os.Link(tmpPath, filename); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", filename, os.ErrExist)
		}
		return fmt.Errorf("failed to link temp file: %w", err)
	}
	return nil
}

func writeTemp(filename string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	fail := func(format string, err error) (string, error) {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf(format, err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		return fail("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return fail("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmpPath, nil
}
