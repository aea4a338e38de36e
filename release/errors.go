package release

import "errors"

// Failure kinds of a resolution. Each wraps the underlying cause, so errors.Is
// matches both the kind and e.g. remote.ErrTimeout or archive.ErrExtraction.
var (
	// ErrNoFallback indicates the latest release was requested, the remote was unreachable and nothing is cached.
	ErrNoFallback = errors.New("release: remote unavailable and no cached release to fall back to")
	// ErrVersionUnavailable indicates an explicit tag that is neither cached nor obtainable from the remote.
	ErrVersionUnavailable = errors.New("release: version unavailable")
	// ErrMaterialize indicates the archive of a release could not be downloaded, extracted or published.
	ErrMaterialize = errors.New("release: materialization failed")
	// ErrFilesystem indicates the cache directory or the index could not be read or written.
	ErrFilesystem = errors.New("release: cache filesystem failure")
	// ErrInvalidTag indicates a tag that cannot be mapped to a cache directory.
	ErrInvalidTag = errors.New("release: invalid tag")
	// ErrPathConflict indicates the cache directory of a tag is already recorded for another tag.
	ErrPathConflict = errors.New("release: cache directory belongs to another tag")
)
