package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Templates lists the template names shipped with the release at releasePath,
// that is the immediate subdirectories of its templates folder, sorted by name.
// A release without a templates folder has no templates.
func Templates(fs afero.Fs, releasePath string) ([]string, error) {
	dir := filepath.Join(releasePath, constant.TemplatesDir)

	infos, err := afero.ReadDir(fs, dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	names := lo.FilterMap(infos, func(info os.FileInfo, _ int) (string, bool) {
		return info.Name(), info.IsDir()
	})
	sort.Strings(names)
	return names, nil
}
