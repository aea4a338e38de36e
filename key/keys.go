// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 16

// Release Source - these keys select the upstream template repository and how its archives are fetched.
const (
	ReleaseURL         = "release.url"
	ReleaseArchive     = "release.archive"
	ReleaseVersionsTTL = "release.versions_ttl"
)

// Cache Layout - these keys control where materialized releases are stored.
const (
	CacheRoot = "cache.root"
)

// Network - these keys bound remote calls.
const (
	RemoteTimeout   = "remote.timeout"
	RemoteToken     = "remote.token"
	DownloadTimeout = "download.timeout"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite      = "logs.write"
	LogsLevel      = "logs.level"
	LogsJson       = "logs.json"
	LogsMaxSize    = "logs.max_size"
	LogsMaxBackups = "logs.max_backups"
	LogsCompress   = "logs.compress"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
