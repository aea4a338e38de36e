package release

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/afero"
)

// Record describes one materialized release. Path is relative to the template directory of the cache root.
type Record struct {
	Tag         string    `json:"tag" jsonschema:"description=Release tag as published by the remote."`
	PublishedAt time.Time `json:"time" jsonschema:"description=Publish time reported by the remote."`
	Path        string    `json:"path" jsonschema:"description=Directory of the release relative to the template directory."`
}

// Index maps a tag to its cached release.
type Index map[string]*Record

// Latest returns the record with the greatest publish time.
// Equal publish times are broken by the lexicographically greatest tag.
func (i Index) Latest() mo.Option[*Record] {
	if len(i) == 0 {
		return mo.None[*Record]()
	}

	latest := lo.MaxBy(lo.Values(i), func(a, b *Record) bool {
		if a.PublishedAt.Equal(b.PublishedAt) {
			return a.Tag > b.Tag
		}
		return a.PublishedAt.After(b.PublishedAt)
	})
	return mo.Some(latest)
}

// Get returns the record of tag.
func (i Index) Get(tag string) mo.Option[*Record] {
	record, ok := i[tag]
	if !ok {
		return mo.None[*Record]()
	}
	return mo.Some(record)
}

// Owner returns the record stored under path.
func (i Index) Owner(path string) mo.Option[*Record] {
	for _, record := range i {
		if record.Path == path {
			return mo.Some(record)
		}
	}
	return mo.None[*Record]()
}

// Records returns every record, newest first.
func (i Index) Records() []*Record {
	records := lo.Values(i)
	sort.SliceStable(records, func(a, b int) bool {
		if records[a].PublishedAt.Equal(records[b].PublishedAt) {
			return records[a].Tag > records[b].Tag
		}
		return records[a].PublishedAt.After(records[b].PublishedAt)
	})
	return records
}

// Tags returns every cached tag, newest first.
func (i Index) Tags() []string {
	return lo.Map(i.Records(), func(r *Record, _ int) string { return r.Tag })
}

// Store persists an Index as a single JSON file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the index file location.
func (s *Store) Path() string {
	return s.path
}

// Read loads the index. A missing file is created empty; unparsable content reads as an empty index.
// Only failures to create the file are returned.
func (s *Store) Read() (Index, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Index{}, s.create()
	}
	if err != nil {
		log.Debugf("release index %s unreadable, treating as empty: %v", s.path, err)
		return Index{}, nil
	}

	index := Index{}
	if len(data) == 0 {
		return index, nil
	}
	if err := json.Unmarshal(data, &index); err != nil {
		log.Debugf("release index %s is corrupt, treating as empty: %v", s.path, err)
		return Index{}, nil
	}

	// Drop entries a hand edit may have left without a directory name.
	for tag, record := range index {
		if record == nil || record.Path == "" {
			delete(index, tag)
		}
	}
	return index, nil
}

// Write replaces the index file. Content goes to a temporary file in the same directory
// which is then renamed over the index, so readers never observe a partial document.
func (s *Store) Write(index Index) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, dir, err)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode index: %w", ErrFilesystem, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, constant.IndexFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temporary index: %w", ErrFilesystem, err)
	}
	name := tmp.Name()

	_, err = tmp.Write(append(data, '\n'))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(name)
		return fmt.Errorf("%w: write %s: %w", ErrFilesystem, name, err)
	}

	if err := s.fs.Rename(name, s.path); err != nil {
		_ = s.fs.Remove(name)
		return fmt.Errorf("%w: replace %s: %w", ErrFilesystem, s.path, err)
	}
	return nil
}

// create writes an empty index unless another writer got there first.
func (s *Store) create() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, filepath.Dir(s.path), err)
	}

	file, err := s.fs.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFilesystem, s.path, err)
	}

	_, err = file.WriteString("{}\n")
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrFilesystem, s.path, err)
	}
	return nil
}

// tagNamespace seeds the name-based UUIDs that tell sanitized tags apart.
var tagNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/codingforme/bingolink-cli/tags"))

// suffixed matches names ending like a tag digest appended by StoragePath.
var suffixed = regexp.MustCompile(`-[0-9a-f]{12}$`)

// StoragePath derives the cache directory name of a tag.
// A tag that is not usable as a file name as is, or that already ends like a digest,
// gets a digest of the raw tag appended, so distinct tags never share a directory.
func StoragePath(tag string) (string, error) {
	dir := util.SanitizeFilename(tag)
	if dir == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	if dir != tag || suffixed.MatchString(tag) {
		digest := strings.ReplaceAll(uuid.NewSHA1(tagNamespace, []byte(tag)).String(), "-", "")
		dir += "-" + digest[:12]
	}

	switch dir {
	case constant.IndexFile, constant.VersionsFile:
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return dir, nil
}
