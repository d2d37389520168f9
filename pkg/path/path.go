package path

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNotFound = errors.New("not found in any parent directory")

// FindRoot walks up from startDir and returns the first directory holding
// targetName. isDir selects whether the target must be a directory or a
// regular file.
func FindRoot(startDir, targetName string, isDir bool) (string, error) {
	for dir := filepath.Clean(startDir); ; {
		if matches(filepath.Join(dir, targetName), isDir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s from %s: %w", targetName, startDir, ErrNotFound)
		}
		dir = parent
	}
}

func matches(fullPath string, isDir bool) bool {
	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}
	return info.IsDir() == isDir
}
