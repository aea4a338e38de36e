// Package archive materializes a remote release archive into a local directory.
//
// The archive is streamed to a temporary file, extracted into a scratch directory
// next to the target and published with a single rename, so the target path either
// holds a complete tree or does not exist.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/remote"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// scratchPrefix marks extraction directories; they never survive a Fetch call.
const scratchPrefix = ".extract-"

// Opener streams the resource at url. remote.Client implements it.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, url string) (io.ReadCloser, error)

// Open calls f(ctx, url).
func (f OpenerFunc) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	return f(ctx, url)
}

// Fetcher downloads and publishes release archives.
type Fetcher struct {
	opener  Opener
	fs      afero.Fs
	tempDir string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFs sets the filesystem backend. Default is filesystem.API().
func WithFs(fs afero.Fs) Option {
	return func(f *Fetcher) {
		if fs != nil {
			f.fs = fs
		}
	}
}

// WithTempDir sets where downloads are staged. Default is the OS temp directory.
func WithTempDir(dir string) Option {
	return func(f *Fetcher) {
		f.tempDir = dir
	}
}

// New creates a Fetcher. Panics if opener is nil.
func New(opener Opener, opts ...Option) *Fetcher {
	if opener == nil {
		panic("archive: Opener must not be nil")
	}
	f := &Fetcher{
		opener: opener,
		fs:     filesystem.API().Fs,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url and publishes the archive's single top-level directory at target.
// target must not exist yet. On any failure target is left absent and every temporary artifact is removed.
func (f *Fetcher) Fetch(ctx context.Context, url, target string) error {
	id := uuid.NewString()
	logger := log.WithFields(logrus.Fields{"download": id, "target": target})

	if _, err := f.fs.Stat(target); err == nil {
		return fmt.Errorf("%w: %s already exists", ErrFilesystem, target)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: stat %s: %w", ErrFilesystem, target, err)
	}

	logger.WithField("url", url).Info("downloading release archive")
	archivePath, err := f.download(ctx, url)
	if err != nil {
		return err
	}
	defer f.remove(logger, archivePath)

	parent := filepath.Dir(target)
	if err := f.fs.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, parent, err)
	}

	// Scratch lives beside target so the final rename never crosses devices.
	scratch := filepath.Join(parent, scratchPrefix+id)
	defer f.remove(logger, scratch)

	logger.Debug("extracting release archive")
	if err := Extract(f.fs, archivePath, scratch); err != nil {
		return err
	}

	root, err := SingleRoot(f.fs, scratch)
	if err != nil {
		return err
	}

	if err := f.fs.Rename(root, target); err != nil {
		return fmt.Errorf("%w: publish %s: %w", ErrFilesystem, target, err)
	}

	logger.Info("release archive materialized")
	return nil
}

// download streams url into a uniquely named temporary file and returns its path.
func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	body, err := f.opener.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	tmp, err := afero.TempFile(f.fs, f.tempDir, "bingolink-*.archive")
	if err != nil {
		return "", fmt.Errorf("%w: create temporary file: %w", ErrFilesystem, err)
	}
	name := tmp.Name()

	_, copyErr := io.Copy(tmp, &ctxReader{ctx: ctx, r: body})
	closeErr := tmp.Close()

	switch {
	case copyErr != nil:
		_ = f.fs.Remove(name)
		var readErr *readError
		if errors.As(copyErr, &readErr) {
			return "", remote.Transport(ctx, readErr.err)
		}
		return "", fmt.Errorf("%w: write %s: %w", ErrFilesystem, name, copyErr)
	case closeErr != nil:
		_ = f.fs.Remove(name)
		return "", fmt.Errorf("%w: close %s: %w", ErrFilesystem, name, closeErr)
	}
	return name, nil
}

func (f *Fetcher) remove(logger *logrus.Entry, path string) {
	if err := f.fs.RemoveAll(path); err != nil {
		logger.WithError(err).Warnf("could not remove %s", path)
	}
}

// SingleRoot returns the only top-level directory inside dir.
// Anything other than exactly one directory is an extraction error.
func SingleRoot(fs afero.Fs, dir string) (string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrFilesystem, dir, err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return "", fmt.Errorf("%w: expected exactly one top-level directory, found %d entries", ErrExtraction, len(entries))
	}
	return filepath.Join(dir, entries[0].Name()), nil
}

// readError tags failures coming from the network side of a copy.
type readError struct{ err error }

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

// ctxReader stops a copy once ctx is done and tags read failures.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, &readError{err: err}
	}
	n, err := c.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &readError{err: err}
	}
	return n, err
}
