// Package filesystem provides the swappable filesystem backend shared by the cache, the scaffolder and the configuration engine.
//
// Production code runs on the OS filesystem; tests switch to an in-memory backend.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Set installs an arbitrary backend, e.g. a BasePathFs rooted in a test directory.
func Set(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}
