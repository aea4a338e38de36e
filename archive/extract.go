package archive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	gzipMagic = []byte{0x1f, 0x8b}
)

// Extract decodes the zip or gzip'd tar archive at src into dest, detecting the format from its leading bytes.
func Extract(fs afero.Fs, src, dest string) error {
	f, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrFilesystem, src, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: read %s: %w", ErrExtraction, src, err)
	}
	head = head[:n]
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: rewind %s: %w", ErrFilesystem, src, err)
	}

	if err := fs.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, dest, err)
	}

	switch {
	case bytes.HasPrefix(head, zipMagic):
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("%w: stat %s: %w", ErrFilesystem, src, err)
		}
		return unzip(fs, f, info.Size(), dest)
	case bytes.HasPrefix(head, gzipMagic):
		return untar(fs, f, dest)
	default:
		return fmt.Errorf("%w: %s is neither a zip nor a gzip archive", ErrExtraction, src)
	}
}

func unzip(fs afero.Fs, r io.ReaderAt, size int64, dest string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	for _, entry := range zr.File {
		path, err := entryPath(dest, entry.Name)
		if err != nil {
			return err
		}

		mode := entry.Mode()
		switch {
		case mode.IsDir():
			if err := mkdir(fs, path); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			rc, err := entry.Open()
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrExtraction, entry.Name, err)
			}
			link, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrExtraction, entry.Name, err)
			}
			if err := symlink(fs, dest, path, string(link)); err != nil {
				return err
			}
		default:
			rc, err := entry.Open()
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrExtraction, entry.Name, err)
			}
			err = writeFile(fs, path, rc, mode.Perm())
			_ = rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func untar(fs afero.Fs, r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExtraction, err)
		}

		// GitHub tarballs open with a pax_global_header entry carrying the commit id.
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		path, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := mkdir(fs, path); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(fs, path, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := symlink(fs, dest, path, hdr.Linkname); err != nil {
				return err
			}
		}
	}
}

// entryPath maps an archive entry name into dest, rejecting names that would land outside it.
func entryPath(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: entry %q escapes the extraction directory", ErrExtraction, name)
	}
	return filepath.Join(dest, clean), nil
}

func mkdir(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, path, err)
	}
	return nil
}

func writeFile(fs afero.Fs, path string, r io.Reader, perm os.FileMode) error {
	if err := mkdir(fs, filepath.Dir(path)); err != nil {
		return err
	}

	// Owner must be able to rewrite the tree later, e.g. when a project is scaffolded from it.
	perm |= 0o600

	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrExtraction, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrFilesystem, path, err)
	}
	return nil
}

// symlink recreates a link when the backend supports it. Links pointing outside dest are rejected;
// backends without link support skip them.
func symlink(fs afero.Fs, dest, path, target string) error {
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(path), target)
	}
	rel, err := filepath.Rel(dest, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(target) {
		return fmt.Errorf("%w: link %s -> %s escapes the extraction directory", ErrExtraction, path, target)
	}

	linker, ok := fs.(afero.Linker)
	if !ok {
		return nil
	}
	if err := mkdir(fs, filepath.Dir(path)); err != nil {
		return err
	}
	if err := linker.SymlinkIfPossible(target, path); err != nil {
		return fmt.Errorf("%w: link %s: %w", ErrFilesystem, path, err)
	}
	return nil
}
