package archive

import "errors"

var (
	// ErrExtraction indicates the archive could not be decoded or did not have the expected layout.
	ErrExtraction = errors.New("archive: extraction failed")
	// ErrFilesystem indicates a local write, rename or cleanup failure while materializing a release.
	ErrFilesystem = errors.New("archive: filesystem failure")
)
