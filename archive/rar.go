package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/mholt/archives"
)

var (
	rarSignature  = []byte("Rar!\x1a\x07\x00")
	rar5Signature = []byte("Rar!\x1a\x07\x01\x00")
)

// rarArchive enumerates headers once and re-streams the archive to reach a
// member, since rar content is only reachable sequentially.
type rarArchive struct {
	path    string
	file    *os.File
	entries []Entry
	mu      sync.Mutex // serializes streams over file
}

func openRar(ctx context.Context, path string) (*rarArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	if err := checkRarSignature(f); err != nil {
		f.Close()
		if isIOError(err) {
			return nil, ioError(path, err)
		}
		return nil, formatError(FormatRar, path, err)
	}

	r := &rarArchive{path: path, file: f}
	ordinal := 0
	err = r.walk(ctx, func(_ context.Context, info archives.FileInfo) error {
		r.entries = append(r.entries, Entry{
			FullPath: strings.ReplaceAll(info.NameInArchive, "/", `\`),
			IsDir:    info.IsDir(),
			Handle:   Handle(ordinal),
		})
		ordinal++
		return nil
	})
	if err != nil {
		f.Close()
		switch {
		case isIOError(err):
			return nil, ioError(path, err)
		case len(r.entries) > 0:
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptArchive, path, err)
		}
		return nil, formatError(FormatRar, path, err)
	}
	return r, nil
}

func checkRarSignature(f *os.File) error {
	head := make([]byte, len(rar5Signature))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	head = head[:n]
	if !bytes.HasPrefix(head, rarSignature) && !bytes.HasPrefix(head, rar5Signature) {
		return errors.New("rar signature not found")
	}
	return nil
}

// walk streams every header of the archive from the beginning.
func (r *rarArchive) walk(ctx context.Context, fn archives.FileHandler) error {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	err := archives.Rar{}.Extract(ctx, r.file, fn)
	if errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (r *rarArchive) Format() Format   { return FormatRar }
func (r *rarArchive) Path() string     { return r.path }
func (r *rarArchive) Entries() []Entry { return r.entries }

// Open streams the archive up to the member at h and returns a reader over
// its content. The reader must be closed before the next call to Open.
//
// Every call decodes the archive again from the first header, so opening all
// n members this way costs O(n²) in archive size. Bulk readers should use
// Stream.
func (r *rarArchive) Open(h Handle) (io.ReadCloser, error) {
	if int(h) < 0 || int(h) >= len(r.entries) {
		return nil, fmt.Errorf("%w: %d", ErrBadHandle, h)
	}
	pr, pw := io.Pipe()
	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		ordinal := 0
		found := false
		err := r.walk(context.Background(), func(_ context.Context, info archives.FileInfo) error {
			if ordinal != int(h) {
				ordinal++
				return nil
			}
			found = true
			member, err := info.Open()
			if err != nil {
				return err
			}
			defer member.Close()
			if _, err := io.Copy(pw, member); err != nil {
				return err
			}
			return fs.SkipAll
		})
		if err == nil && !found {
			err = fmt.Errorf("%w: %d", ErrBadHandle, h)
		}
		if err != nil && !errors.Is(err, io.ErrClosedPipe) {
			err = fmt.Errorf("%w: %s: %w", ErrCorruptArchive, r.entries[h].FullPath, err)
		}
		pw.CloseWithError(err)
	}()
	return pr, nil
}

// Stream decodes the archive once, handing each file member to fn together
// with its handle.
func (r *rarArchive) Stream(ctx context.Context, fn func(h Handle, rd io.Reader) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ordinal := -1
	err := r.walk(ctx, func(_ context.Context, info archives.FileInfo) error {
		ordinal++
		if info.IsDir() {
			return nil
		}
		member, err := info.Open()
		if err != nil {
			return err
		}
		defer member.Close()
		return fn(Handle(ordinal), member)
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		return fmt.Errorf("%w: %s: %w", ErrCorruptArchive, r.path, err)
	}
	return nil
}

func (r *rarArchive) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
