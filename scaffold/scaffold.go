// Package scaffold turns a resolved template release into a new project directory.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/release"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/samber/mo"
	"github.com/spf13/afero"
)

// SourceDir is the project folder a selected template replaces.
const SourceDir = "src"

// ErrExists is returned when the project directory is already taken.
var ErrExists = errors.New("scaffold: destination already exists")

// Result reports how the project was initialized.
type Result struct {
	// Template is the template copied into SourceDir, if any.
	Template mo.Option[string]
	// Missing is set when the requested template does not exist in the release.
	Missing bool
	// Suggestion is the closest existing template when Missing is set.
	Suggestion mo.Option[string]
}

// Create copies the release at releasePath into dest. When template is set
// the project's SourceDir is replaced with that template. The templates folder
// is not part of the project and is removed afterwards.
func Create(fs afero.Fs, releasePath, dest string, template mo.Option[string]) (*Result, error) {
	if exists, err := afero.Exists(fs, dest); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: %s", ErrExists, dest)
	}

	log.Infof("copying release %s to %s", releasePath, dest)
	if err := Copy(fs, releasePath, dest); err != nil {
		return nil, err
	}

	result := &Result{}
	templates := filepath.Join(dest, constant.TemplatesDir)

	if name, ok := template.Get(); ok {
		chosen := filepath.Join(templates, name)
		found, err := afero.DirExists(fs, chosen)
		if err != nil {
			return nil, err
		}

		if found {
			src := filepath.Join(dest, SourceDir)
			if err := fs.RemoveAll(src); err != nil {
				return nil, err
			}
			if err := Copy(fs, chosen, src); err != nil {
				return nil, err
			}
			result.Template = mo.Some(name)
		} else {
			names, err := release.Templates(fs, dest)
			if err != nil {
				return nil, err
			}
			log.Warnf("template %s not found in %s", name, releasePath)
			result.Missing = true
			result.Suggestion = util.Suggest(name, names)
		}
	}

	if err := fs.RemoveAll(templates); err != nil {
		return nil, err
	}
	return result, nil
}

// Copy recreates the tree at src under dst, keeping file modes.
func Copy(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			return fs.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode()&os.ModeSymlink != 0:
			return copyLink(fs, path, target)
		case info.Mode().IsRegular():
			return copyFile(fs, path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer util.Ignore(in.Close)

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

func copyLink(fs afero.Fs, src, dst string) error {
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return nil
	}
	linker, ok := fs.(afero.Linker)
	if !ok {
		return nil
	}

	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return err
	}
	return linker.SymlinkIfPossible(target, dst)
}
