// Package archive enumerates the members of zip and rar uploads.
//
// An Archive is opened once per preview build. Its entries carry an opaque
// Handle that the extraction task later passes back to Open to stream the
// member's bytes. The Archive owns the underlying file until Close.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// Format identifies the container type of an archive.
type Format string

const (
	FormatZip Format = "zip"
	FormatRar Format = "rar"
)

// Separator returns the path separator native to the format.
func (f Format) Separator() string {
	if f == FormatRar {
		return `\`
	}
	return "/"
}

// Handle addresses one member of an open Archive.
type Handle int

// Entry is one record of an archive's central directory (zip) or header
// stream (rar).
type Entry struct {
	FullPath string
	IsDir    bool
	Handle   Handle
}

// Archive is an enumerated archive whose members can be opened by handle.
type Archive interface {
	Format() Format
	Path() string
	Entries() []Entry
	Open(h Handle) (io.ReadCloser, error)
	Close() error
}

// Streamer is implemented by archives whose members are only reachable
// sequentially. Stream reads the archive once from the start and calls fn
// for every file member in archive order; directories are skipped. Returning
// fs.SkipAll from fn ends the pass early without error.
type Streamer interface {
	Stream(ctx context.Context, fn func(h Handle, r io.Reader) error) error
}

// Options tune how an archive is enumerated.
type Options struct {
	// FallbackCharset names the charset used to decode zip file names that
	// are not flagged as UTF-8 when the archive carries no UTF-8 BOM.
	FallbackCharset string

	// OnCharsetWarning is called when charset detection degraded to the
	// default. Optional.
	OnCharsetWarning func(err error)
}

// Open enumerates the archive at path. The claimed format is taken from the
// file extension; files with any other extension are sniffed.
func Open(ctx context.Context, path string, opts Options) (Archive, error) {
	format, err := DetectFormat(ctx, path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatZip:
		return openZip(path, opts)
	case FormatRar:
		return openRar(ctx, path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// DetectFormat reports the format claimed by path's extension, or sniffs the
// file contents when the extension is not .zip or .rar.
func DetectFormat(ctx context.Context, path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FormatZip, nil
	case ".rar":
		return FormatRar, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", ioError(path, err)
	}
	defer f.Close()

	format, _, err := archives.Identify(ctx, "", f)
	if errors.Is(err, archives.NoMatch) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return "", ioError(path, err)
	}
	switch format.(type) {
	case archives.Zip:
		return FormatZip, nil
	case archives.Rar:
		return FormatRar, nil
	}
	return "", fmt.Errorf("%w: %s is %s", ErrUnsupportedFormat, path, strings.TrimPrefix(format.Extension(), "."))
}

func ioError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
}

func formatError(format Format, path string, err error) error {
	return fmt.Errorf("%w: %s as %s: %w", ErrArchiveFormat, path, format, err)
}

// isIOError reports whether err came from the filesystem rather than from the
// archive decoder.
func isIOError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) || errors.Is(err, fs.ErrPermission)
}
