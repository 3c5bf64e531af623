package archive

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/dendrascience/archive-preview/util"
)

type zipArchive struct {
	path    string
	rc      *zip.ReadCloser
	entries []Entry
}

func openZip(path string, opts Options) (*zipArchive, error) {
	cs, err := util.DetectCharset(path, opts.FallbackCharset)
	if err != nil && opts.OnCharsetWarning != nil {
		opts.OnCharsetWarning(err)
	}

	rc, err := zip.OpenReader(path)
	if err != nil {
		if isIOError(err) {
			return nil, ioError(path, err)
		}
		return nil, formatError(FormatZip, path, err)
	}

	z := &zipArchive{path: path, rc: rc, entries: make([]Entry, 0, len(rc.File))}
	for i, f := range rc.File {
		name := f.Name
		if f.NonUTF8 {
			name = cs.Decode(name)
		}
		z.entries = append(z.entries, Entry{
			FullPath: name,
			IsDir:    strings.HasSuffix(name, "/") || f.FileInfo().IsDir(),
			Handle:   Handle(i),
		})
	}
	return z, nil
}

func (z *zipArchive) Format() Format   { return FormatZip }
func (z *zipArchive) Path() string     { return z.path }
func (z *zipArchive) Entries() []Entry { return z.entries }

func (z *zipArchive) Open(h Handle) (io.ReadCloser, error) {
	if int(h) < 0 || int(h) >= len(z.rc.File) {
		return nil, fmt.Errorf("%w: %d", ErrBadHandle, h)
	}
	r, err := z.rc.File[h].Open()
	if err != nil {
		if errors.Is(err, zip.ErrAlgorithm) || errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptArchive, z.rc.File[h].Name, err)
		}
		return nil, ioError(z.path, err)
	}
	return r, nil
}

func (z *zipArchive) Close() error {
	return z.rc.Close()
}
