// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/remote"
	"github.com/codingforme/bingolink-cli/where"
	"github.com/metafates/gache"
)

// Source describes releases of the CLI itself.
type Source interface {
	Release(ctx context.Context, tag string) (*remote.Release, error)
}

var versionCacher = sync.OnceValue(func() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	})
})

// Latest returns the newest published CLI version without the "v" prefix.
// The answer is cached for two days to spare the API rate limit.
func Latest(ctx context.Context, source Source) (string, error) {
	cacher := versionCacher()

	ver, expired, err := cacher.Get()
	if err == nil && !expired && ver != "" {
		return ver, nil
	}

	release, err := source.Release(ctx, "")
	if err != nil {
		return "", err
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	if ver == "" {
		return "", errors.New("empty tag name")
	}

	_ = cacher.Set(ver)
	return ver, nil
}
