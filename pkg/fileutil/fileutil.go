package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rohmanhakim/element-locator/pkg/failure"
)

// GetFileExtension extracts the lowercase file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ReplaceExtension swaps the extension of path for ext (given without the dot).
func ReplaceExtension(path string, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + "." + ext
}

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := append([]string{dir}, path...)
	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      fullDir,
		}
	}
	return nil
}

// WriteFile writes data to dir/name, creating dir when needed.
// ENOSPC is reported as a retryable disk-full error.
func WriteFile(dir string, name string, data []byte) (string, failure.ClassifiedError) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return "", &FileError{
				Message:   err.Error(),
				Retryable: true,
				Cause:     ErrCauseDiskFull,
				Path:      fullPath,
			}
		}
		return "", &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteError,
			Path:      fullPath,
		}
	}
	return fullPath, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
