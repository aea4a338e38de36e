// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "BINGOLINK_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden via the BINGOLINK_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the default release cache root, a dot-directory named after the application in the user's home.
func Cache() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return ensureDir(filepath.Join(home, "."+constant.App))
}

// Templates resolves the directory holding the release index and the materialized releases under root.
func Templates(root string) string {
	return filepath.Join(root, constant.TemplateDir)
}

// Index resolves the release index file under root.
func Index(root string) string {
	return filepath.Join(Templates(root), constant.IndexFile)
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Temp resolves a unique, volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
