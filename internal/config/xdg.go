// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "typecrab"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultContentDir returns the directory holding user word lists
// (words/<lang>.txt) and quotes (quotes/<lang>.txt).
func DefaultContentDir() string {
	return filepath.Join(XDGConfigHome(), appName)
}

// DefaultSchemeDir returns the directory for user color schemes.
func DefaultSchemeDir() string {
	return filepath.Join(XDGConfigHome(), appName, "schemes")
}

// DefaultLogPath returns the path of the rotating log file.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
