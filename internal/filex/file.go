// Package filex locates and prepares the per-user application data
// directory that holds the local cache database.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDataDir returns the buildpad data directory under the user's config
// root (e.g. ~/.config/buildpad on Linux), creating it when absent.
func AppDataDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	dir := filepath.Join(root, "buildpad")

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// DefaultCachePath returns the default path of the local cache database.
func DefaultCachePath() (string, error) {
	dir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "buildpad.db"), nil
}
