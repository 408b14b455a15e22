// Package fileutil holds small filesystem helpers for per-job temporary
// artifacts.
package fileutil

import (
	"fmt"
	"os"
)

// WriteTemp streams data into a uniquely named file in dir (system temp when
// empty) matching pattern and returns its path. The caller owns the file.
func WriteTemp(dir, pattern string, data []byte) (string, error) {
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return file.Name(), nil
}

// TempPath reserves a uniquely named file in dir matching pattern and returns
// its path without keeping it open. Used for paths handed to external tools
// that create the output themselves.
func TempPath(dir, pattern string) (string, error) {
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return file.Name(), nil
}

// RemoveQuietly deletes each path, ignoring missing files and any other
// removal error. Cleanup must never mask the error that caused it.
func RemoveQuietly(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		_ = os.Remove(path)
	}
}
