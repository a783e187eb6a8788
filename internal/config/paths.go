package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory used to store progrich data. It honors
// PROGRICH_HOME for tests and unusual setups.
func DataDir() (string, error) {
	if dir := os.Getenv("PROGRICH_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// Use a dot-directory in the user's home on all platforms
	return filepath.Join(home, ".progrich"), nil
}

// DBPath returns the full path to the run-history SQLite database file.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "progrich.db"), nil
}
