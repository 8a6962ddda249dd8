// Package paths resolves configuration and data directory locations
// for the pantry CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the subdirectory used under platform config/data roots.
const appDirName = "pantry"

// DefaultDataDirName is the CWD-relative data directory used when no
// override is active.
const DefaultDataDirName = ".pantry-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PANTRY_CONFIG_DIR"
	EnvDataDir   = "PANTRY_DATA_DIR"
)

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/pantry (fallback ~/.config/pantry)
// macOS:   ~/Library/Application Support/pantry
// Windows: %APPDATA%/pantry
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/pantry (fallback ~/.local/share/pantry)
// macOS:   ~/Library/Application Support/pantry
// Windows: %APPDATA%/pantry
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// xdgDir resolves an XDG base directory with its home-relative fallback.
func xdgDir(envVar, fallback string) (string, error) {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PANTRY_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml data_dir > PANTRY_DATA_DIR env >
// $(CWD)/.pantry-db.
//
// The CWD-relative default keeps a project's index next to the project
// when nothing else is configured.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
