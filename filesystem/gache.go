package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// GacheFs lets gache persist through afero. A nil Fs follows whatever API() currently points to.
type GacheFs struct {
	Fs afero.Fs
}

func (g *GacheFs) backend() afero.Fs {
	if g.Fs != nil {
		return g.Fs
	}
	return API().Fs
}

// OpenFile opens name on the backend.
func (g *GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return g.backend().OpenFile(name, flag, perm)
}

// MkdirAll creates path on the backend.
func (g *GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return g.backend().MkdirAll(path, perm)
}
