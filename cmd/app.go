package cmd

import (
	"context"
	"fmt"

	"github.com/codingforme/bingolink-cli/archive"
	"github.com/codingforme/bingolink-cli/auth"
	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/config"
	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/key"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/network"
	"github.com/codingforme/bingolink-cli/release"
	"github.com/codingforme/bingolink-cli/remote"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/codingforme/bingolink-cli/where"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// cacheRoot returns the configured cache root or the default one in the home directory.
func cacheRoot() string {
	if root := viper.GetString(key.CacheRoot); root != "" {
		return root
	}
	return where.Cache()
}

func newClient(baseURL string) (*remote.Client, error) {
	token, err := auth.Token(viper.GetString(key.RemoteToken))
	if err != nil {
		log.Warnf("keyring unavailable: %v", err)
	}
	return remote.New(baseURL, remote.WithHTTPClient(network.Client), remote.WithToken(token))
}

func newResolver() (*release.Resolver, *remote.Client, error) {
	client, err := newClient(viper.GetString(key.ReleaseURL))
	if err != nil {
		return nil, nil, err
	}

	fs := filesystem.API().Fs
	fetcher := archive.New(client, archive.WithFs(fs), archive.WithTempDir(where.Temp()))

	resolver, err := release.New(
		cacheRoot(),
		client,
		fetcher,
		release.WithFs(fs),
		release.WithArchiveFormat(viper.GetString(key.ReleaseArchive)),
		release.WithRemoteTimeout(config.Seconds(key.RemoteTimeout)),
		release.WithDownloadTimeout(config.Seconds(key.DownloadTimeout)),
		release.WithVersionsTTL(config.Minutes(key.ReleaseVersionsTTL)),
	)
	if err != nil {
		return nil, nil, err
	}
	return resolver, client, nil
}

// remoteContext bounds a direct API call by remote.timeout.
func remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := config.Seconds(key.RemoteTimeout); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// versionArg turns an optional positional argument into a version request.
func versionArg(args []string, at int) mo.Option[string] {
	if len(args) > at && args[at] != "" && args[at] != "latest" {
		return mo.Some(args[at])
	}
	return mo.None[string]()
}

// resolve runs the resolver with progress output and reports stale results.
func resolve(ctx context.Context, resolver *release.Resolver, version mo.Option[string]) *release.Resolution {
	erase := util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), style.Fg(color.Purple)(version.OrElse("latest"))))
	res, err := resolver.Resolve(ctx, version)
	erase()
	handleErr(err)

	if res.Stale {
		fmt.Printf(
			"%s %s\n",
			style.Fg(color.Yellow)(icon.Get(icon.Warn)),
			style.Fg(color.Yellow)(fmt.Sprintf("Remote unavailable, using cached release %s which may be outdated", res.Tag)),
		)
	}
	return res
}
