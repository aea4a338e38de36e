package remote

import (
	"time"

	"github.com/codingforme/bingolink-cli/constant"
)

// Release is the subset of the release API document the cache cares about.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	ZipballURL  string    `json:"zipball_url"`
	TarballURL  string    `json:"tarball_url"`
}

// ArchiveURL returns the download URL for the requested archive format, defaulting to the zipball.
func (r *Release) ArchiveURL(format string) string {
	if format == constant.ArchiveTarball && r.TarballURL != "" {
		return r.TarballURL
	}
	return r.ZipballURL
}

// Title is the human readable name of the release, falling back to its tag.
func (r *Release) Title() string {
	if r.Name != "" {
		return r.Name
	}
	return r.TagName
}
