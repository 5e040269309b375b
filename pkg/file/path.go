package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// InDir returns the path of a file with the same base name as path inside
// dir.
func InDir(dir, path string) string {
	if path == "" {
		return dir
	}
	return filepath.Join(dir, filepath.Base(path))
}

// CheckDir reports an error unless dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
