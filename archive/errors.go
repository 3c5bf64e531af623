package archive

import "errors"

// Sentinel errors for package archive. Every error returned by Open wraps one
// of these; callers treat any of them as "nothing to preview".
var (
	ErrArchiveFormat     = errors.New("archive cannot be parsed as its claimed format")
	ErrCorruptArchive    = errors.New("archive is corrupt")
	ErrIO                = errors.New("archive read failure")
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	ErrBadHandle         = errors.New("entry handle out of range")
)
