// Package release resolves template versions to local directories and keeps
// the persistent index of releases materialized so far.
package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/filesystem"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/remote"
	"github.com/codingforme/bingolink-cli/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Source describes releases published by the remote. remote.Client implements it.
type Source interface {
	Releases(ctx context.Context) ([]remote.Release, error)
	// Release describes tag, or the latest release when tag is empty.
	Release(ctx context.Context, tag string) (*remote.Release, error)
}

// Fetcher materializes the archive at url as the directory target. archive.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url, target string) error
}

// Origin tells where a resolved release came from.
type Origin int

const (
	// OriginCache means the index already held the release.
	OriginCache Origin = iota
	// OriginDisk means the release directory existed without a record and was adopted.
	OriginDisk
	// OriginRemote means the release was downloaded during this resolution.
	OriginRemote
	// OriginFallback means the remote was unavailable and the newest cached release was used.
	OriginFallback
)

func (o Origin) String() string {
	switch o {
	case OriginCache:
		return "cache"
	case OriginDisk:
		return "disk"
	case OriginRemote:
		return "remote"
	case OriginFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Resolution is a release ready to be used from disk.
type Resolution struct {
	Tag    string
	Path   string
	Origin Origin
	// Stale is set when the latest release was requested but the newest cached one was returned instead.
	Stale bool
}

// states of a resolution, as they appear in logs
const (
	stateCacheLookup     = "cache_lookup"
	stateRemoteFetch     = "remote_fetch"
	stateFallbackToCache = "fallback_to_cache"
	stateDownloadStore   = "download_and_store"
	stateDone            = "done"
	stateFailed          = "failed"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithFs sets the filesystem backend. Default is filesystem.API().
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithArchiveFormat selects the archive downloaded for a release, constant.ArchiveZip or constant.ArchiveTarball.
func WithArchiveFormat(format string) Option {
	return func(r *Resolver) {
		r.format = format
	}
}

// WithRemoteTimeout bounds every metadata call to the remote. Zero disables the bound.
func WithRemoteTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.remoteTimeout = d
	}
}

// WithDownloadTimeout bounds every archive download. Zero disables the bound.
func WithDownloadTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.downloadTimeout = d
	}
}

// WithVersionsTTL sets how long the remote version list is reused before it is requested again.
func WithVersionsTTL(d time.Duration) Option {
	return func(r *Resolver) {
		r.versionsTTL = d
	}
}

// Resolver maps version requests to release directories under a cache root.
// It is safe for concurrent use within one process.
type Resolver struct {
	root    string
	source  Source
	fetcher Fetcher

	fs              afero.Fs
	format          string
	remoteTimeout   time.Duration
	downloadTimeout time.Duration
	versionsTTL     time.Duration

	store    *Store
	locks    *tagLocks
	indexMu  sync.Mutex
	versions *gache.Cache[[]string]
}

// New returns a Resolver keeping its releases under root.
func New(root string, source Source, fetcher Fetcher, opts ...Option) (*Resolver, error) {
	if root == "" {
		return nil, errors.New("release: empty cache root")
	}
	if source == nil || fetcher == nil {
		return nil, errors.New("release: source and fetcher are required")
	}

	r := &Resolver{
		root:    root,
		source:  source,
		fetcher: fetcher,
		fs:      filesystem.API().Fs,
		format:  constant.ArchiveZip,
		locks:   newTagLocks(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.store = NewStore(r.fs, where.Index(root))
	r.versions = gache.New[[]string](&gache.Options{
		Path:       filepath.Join(where.Templates(root), constant.VersionsFile),
		Lifetime:   r.versionsTTL,
		FileSystem: &filesystem.GacheFs{Fs: r.fs},
	})
	return r, nil
}

// Root returns the cache root.
func (r *Resolver) Root() string {
	return r.root
}

// Dir returns the directory of a cached release.
func (r *Resolver) Dir(record *Record) string {
	return filepath.Join(where.Templates(r.root), record.Path)
}

// Index reads the current release index.
func (r *Resolver) Index() (Index, error) {
	return r.store.Read()
}

// Cached looks a release up in the index without touching the network.
// An absent version selects the newest cached release.
func (r *Resolver) Cached(version mo.Option[string]) (mo.Option[*Record], error) {
	index, err := r.store.Read()
	if err != nil {
		return mo.None[*Record](), err
	}

	if tag, ok := version.Get(); ok {
		return index.Get(tag), nil
	}
	return index.Latest(), nil
}

// Resolve returns a local directory holding the requested release.
// An absent version requests the latest release published by the remote.
//
// Concurrent resolutions of the same tag are serialized, so a release
// is downloaded at most once per process.
func (r *Resolver) Resolve(ctx context.Context, version mo.Option[string]) (*Resolution, error) {
	requested, explicit := version.Get()
	logger := log.WithFields(logrus.Fields{"version": version.OrElse("latest")})

	if explicit {
		unlock := r.locks.lock(requested)
		defer unlock()
	}

	logger.WithField("state", stateCacheLookup).Debug("looking up release index")
	index, err := r.store.Read()
	if err != nil {
		return nil, r.fail(logger, err)
	}

	if explicit {
		if record, ok := index[requested]; ok {
			return r.done(logger, record, OriginCache, false), nil
		}
	}

	logger.WithField("state", stateRemoteFetch).Debug("describing release")
	rel, err := r.describe(ctx, requested)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, r.fail(logger, ctx.Err())
		}
		if explicit {
			return nil, r.fail(logger, fmt.Errorf("%w: %s: %w", ErrVersionUnavailable, requested, err))
		}

		logger.WithField("state", stateFallbackToCache).Warnf("remote unavailable: %v", err)
		record, ok := index.Latest().Get()
		if !ok {
			return nil, r.fail(logger, fmt.Errorf("%w: %w", ErrNoFallback, err))
		}
		return r.done(logger, record, OriginFallback, true), nil
	}

	tag := rel.TagName
	if explicit {
		tag = requested
	} else {
		unlock := r.locks.lock(tag)
		defer unlock()

		// another resolution may have stored it while the remote was queried
		if index, err = r.store.Read(); err != nil {
			return nil, r.fail(logger, err)
		}
		if record, ok := index[tag]; ok {
			return r.done(logger, record, OriginCache, false), nil
		}
	}

	logger = logger.WithField("tag", tag)
	logger.WithField("state", stateDownloadStore).Debug("materializing release")

	record, origin, err := r.materialize(ctx, rel, tag)
	if err != nil {
		return nil, r.fail(logger, err)
	}
	return r.done(logger, record, origin, false), nil
}

func (r *Resolver) describe(ctx context.Context, tag string) (*remote.Release, error) {
	ctx, cancel := withTimeout(ctx, r.remoteTimeout)
	defer cancel()

	return r.source.Release(ctx, tag)
}

// materialize stores rel under the directory derived from tag and records it.
// A directory left behind by an earlier run without a record is adopted as is.
func (r *Resolver) materialize(ctx context.Context, rel *remote.Release, tag string) (*Record, Origin, error) {
	dir, err := StoragePath(tag)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	record := &Record{
		Tag:         tag,
		PublishedAt: rel.PublishedAt,
		Path:        dir,
	}
	target := r.Dir(record)

	index, err := r.store.Read()
	if err != nil {
		return nil, 0, err
	}
	if err := claim(index, record); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	exists, err := afero.DirExists(r.fs, target)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: stat %s: %w", ErrFilesystem, target, err)
	}

	origin := OriginDisk
	if !exists {
		url := rel.ArchiveURL(r.format)
		if url == "" {
			return nil, 0, fmt.Errorf("%w: %s: release has no archive", ErrMaterialize, tag)
		}

		if err := r.fs.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrFilesystem, err)
		}

		dctx, cancel := withTimeout(ctx, r.downloadTimeout)
		err := r.fetcher.Fetch(dctx, url, target)
		cancel()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrMaterialize, tag, err)
		}
		origin = OriginRemote
	}

	if err := r.record(record); err != nil {
		return nil, 0, err
	}
	return record, origin, nil
}

// record adds a record to the index. The index is re-read under the lock
// so releases stored concurrently under other tags are kept.
func (r *Resolver) record(record *Record) error {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	index, err := r.store.Read()
	if err != nil {
		return err
	}
	if err := claim(index, record); err != nil {
		return err
	}

	index[record.Tag] = record
	return r.store.Write(index)
}

// claim fails when the directory of record is already recorded for a different tag.
func claim(index Index, record *Record) error {
	if owner, ok := index.Owner(record.Path).Get(); ok && owner.Tag != record.Tag {
		return fmt.Errorf("%w: %s is recorded for %s", ErrPathConflict, record.Path, owner.Tag)
	}
	return nil
}

// Versions lists the tags published by the remote, newest first.
// The list is reused for the configured TTL unless refresh is set.
// When the remote is unavailable an expired list is returned with stale set.
func (r *Resolver) Versions(ctx context.Context, refresh bool) (tags []string, stale bool, err error) {
	cached, expired, cacheErr := r.versions.Get()
	if cacheErr != nil {
		log.Debugf("versions cache unreadable: %v", cacheErr)
		cached = nil
	}

	if !refresh && !expired && r.versionsTTL > 0 && len(cached) > 0 {
		return cached, false, nil
	}

	rctx, cancel := withTimeout(ctx, r.remoteTimeout)
	defer cancel()

	releases, err := r.source.Releases(rctx)
	if err != nil {
		if len(cached) > 0 {
			log.Warnf("remote unavailable, using cached versions: %v", err)
			return cached, true, nil
		}
		return nil, false, fmt.Errorf("%w: %w", ErrNoFallback, err)
	}

	tags = lo.FilterMap(releases, func(rel remote.Release, _ int) (string, bool) {
		return rel.TagName, rel.TagName != ""
	})

	if err := r.versions.Set(tags); err != nil {
		log.Warnf("caching versions: %v", err)
	}
	return tags, false, nil
}

func (r *Resolver) done(logger *logrus.Entry, record *Record, origin Origin, stale bool) *Resolution {
	res := &Resolution{
		Tag:    record.Tag,
		Path:   r.Dir(record),
		Origin: origin,
		Stale:  stale,
	}

	logger.WithFields(logrus.Fields{
		"state":  stateDone,
		"tag":    res.Tag,
		"origin": origin,
		"stale":  stale,
	}).Info("release resolved")
	return res
}

func (r *Resolver) fail(logger *logrus.Entry, err error) error {
	logger.WithField("state", stateFailed).Error(err)
	return err
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
