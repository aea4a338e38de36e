package constant

// Release cache layout.
const (
	// TemplateDir is the directory under the cache root holding the index and every materialized release.
	TemplateDir = "template"

	// IndexFile is the name of the release index inside TemplateDir.
	IndexFile = "release.json"

	// VersionsFile memoizes the remote tag list inside TemplateDir.
	VersionsFile = "versions.json"

	// TemplatesDir is the folder inside a release that holds the selectable templates.
	TemplatesDir = "templates"
)

// DefaultReleaseURL is the releases endpoint of the upstream template repository.
const DefaultReleaseURL = "https://api.github.com/repos/bingo-oss/bingolink-template/releases"

// SelfReleaseURL is the releases endpoint of this CLI, used for update notifications.
const SelfReleaseURL = "https://api.github.com/repos/codingforme/bingolink-cli/releases"

// Archive formats understood by the remote source.
const (
	ArchiveZip     = "zip"
	ArchiveTarball = "tarball"
)
