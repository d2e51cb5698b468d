// Package storage persists client preferences such as board orientation.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "minichess"

// GetDataDir returns the per-user data directory of the client, creating it.
func GetDataDir() (string, error) {
	base, err := userDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// userDataDir is the per-user application data root of the host OS.
func userDataDir() (string, error) {
	// Elsewhere os.UserConfigDir is XDG_CONFIG_HOME, not the data home.
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return os.UserConfigDir()
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// DatabaseDir returns the BadgerDB directory under dataDir, creating it.
// An empty dataDir selects GetDataDir.
func DatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = GetDataDir(); err != nil {
			return "", err
		}
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
