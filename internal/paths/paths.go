// Package paths locates the files wareki reads and writes: the config
// directory holding config.yaml and eras.yaml, the catalog directory holding
// eras.jsonl and its SQLite index, and an optional era config file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "wareki"

// CatalogDirName is the catalog directory created in the working directory
// when nothing else names one.
const CatalogDirName = ".wareki-db"

// ErasFileName is the era config file that init writes to the config
// directory and imports into the catalog.
const ErasFileName = "eras.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WAREKI_CONFIG_DIR"
	EnvDataDir   = "WAREKI_DATA_DIR"
)

// candidate is one entry of a precedence chain. A relative value is taken
// from base, or from the working directory when base is empty.
type candidate struct {
	value string
	base  string
}

// first returns the first non-empty candidate as an absolute path.
func first(chain ...candidate) (string, bool, error) {
	for _, c := range chain {
		if c.value == "" {
			continue
		}
		if c.base != "" && !filepath.IsAbs(c.value) {
			return filepath.Join(c.base, c.value), true, nil
		}
		p, err := filepath.Abs(c.value)
		return p, true, err
	}
	return "", false, nil
}

// DefaultConfigDir returns the per-user config directory:
// $XDG_CONFIG_HOME/wareki or ~/.config/wareki on Linux, and the
// os.UserConfigDir location elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// ResolveConfigDir picks the config directory: flag, then WAREKI_CONFIG_DIR,
// then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	dir, ok, err := first(candidate{value: flag}, candidate{value: os.Getenv(EnvConfigDir)})
	if ok || err != nil {
		return dir, err
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the catalog directory: flag, then the data_dir value
// from config.yaml (relative to configDir), then WAREKI_DATA_DIR, then
// CatalogDirName in the working directory. Keeping the default next to the
// working directory lets a project carry its own catalog.
func ResolveDataDir(flag, configValue, configDir string) (string, error) {
	dir, ok, err := first(
		candidate{value: flag},
		candidate{value: configValue, base: configDir},
		candidate{value: os.Getenv(EnvDataDir)},
	)
	if ok || err != nil {
		return dir, err
	}
	return filepath.Abs(CatalogDirName)
}

// ResolveErasFile picks the era config file: flag, then the eras_file value
// from config.yaml (relative to configDir). An empty result means no era
// config file is in use and the catalog applies.
func ResolveErasFile(flag, configValue, configDir string) (string, error) {
	file, _, err := first(
		candidate{value: flag},
		candidate{value: configValue, base: configDir},
	)
	return file, err
}
