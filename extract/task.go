package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/archive"
	"github.com/dendrascience/archive-preview/internal/metrics"
)

// chunkSize is the copy buffer used for every member.
const chunkSize = 32 << 10

// Item is one member to stage: the archive handle to read and the file name
// to write it under.
type Item struct {
	Target string
	Handle archive.Handle
}

// Report summarizes a finished Task.
type Report struct {
	TaskID        uuid.UUID
	Archive       string
	Extracted     int
	Failed        int
	// Superseded counts items skipped on a single-pass read because a later
	// item of the same task writes the same target.
	Superseded    int
	SourceRemoved bool
}

// Task stages the members of one archive. It owns Archive exclusively from
// the moment it is scheduled.
type Task struct {
	ID         uuid.UUID
	Archive    archive.Archive
	Items      []Item
	StagingDir string
	Logger     *zap.Logger
}

// Run extracts every item, then closes the archive and removes the source
// file. Member failures are logged and counted; Run itself never fails.
//
// Archives implementing archive.Streamer are read in a single pass in archive
// order; the others are read item by item in queued order.
func (t *Task) Run() Report {
	log := t.Logger
	if log == nil {
		log = zap.NewNop()
	}
	src := t.Archive.Path()
	log = log.With(zap.Stringer("task", t.ID), zap.String("archive", src))

	r := Report{TaskID: t.ID, Archive: src}
	if err := os.MkdirAll(t.StagingDir, 0o755); err != nil {
		log.Error("cannot create staging directory", zap.String("dir", t.StagingDir), zap.Error(err))
	}

	buf := make([]byte, chunkSize)
	record := func(item Item, n int64, err error) {
		metrics.RecordEntry(n, err == nil)
		if err != nil {
			r.Failed++
			log.Warn("skipping entry", zap.String("target", item.Target), zap.Error(err))
			return
		}
		r.Extracted++
	}
	if s, ok := t.Archive.(archive.Streamer); ok {
		t.runStream(s, buf, &r, record)
	} else {
		for _, item := range t.Items {
			n, err := t.stage(item, buf)
			record(item, n, err)
		}
	}

	if err := t.Archive.Close(); err != nil {
		log.Warn("closing archive", zap.Error(err))
	}
	switch err := os.Remove(src); {
	case err == nil:
		r.SourceRemoved = true
		metrics.RecordSourceRemoved()
	case errors.Is(err, fs.ErrNotExist):
	default:
		log.Warn("removing source archive", zap.Error(err))
	}

	log.Info("extraction finished",
		zap.Int("extracted", r.Extracted),
		zap.Int("failed", r.Failed),
		zap.Int("superseded", r.Superseded),
		zap.Bool("source_removed", r.SourceRemoved),
	)
	return r
}

// runStream stages items from one sequential pass over s. Only the last item
// per target is read since earlier ones would be overwritten anyway. Items
// whose member never came up in the pass count as failed.
func (t *Task) runStream(s archive.Streamer, buf []byte, r *Report, record func(Item, int64, error)) {
	last := make(map[string]int, len(t.Items))
	for i, item := range t.Items {
		last[item.Target] = i
	}
	pending := make(map[archive.Handle]Item, len(t.Items))
	for i, item := range t.Items {
		if last[item.Target] != i {
			r.Superseded++
			continue
		}
		if err := checkTarget(item.Target); err != nil {
			record(item, 0, err)
			continue
		}
		switch prev, dup := pending[item.Handle]; {
		case dup:
			record(prev, 0, fmt.Errorf("%w: %s: handle %d queued twice", ErrEntryIO, prev.Target, item.Handle))
			pending[item.Handle] = item
		default:
			pending[item.Handle] = item
		}
	}
	if len(pending) == 0 {
		return
	}

	err := s.Stream(context.Background(), func(h archive.Handle, rd io.Reader) error {
		item, ok := pending[h]
		if !ok {
			return nil
		}
		delete(pending, h)
		n, err := t.write(item.Target, rd, buf)
		record(item, n, err)
		if len(pending) == 0 {
			return fs.SkipAll
		}
		return nil
	})
	if err == nil {
		err = archive.ErrBadHandle
	}
	for _, item := range t.Items {
		if p, ok := pending[item.Handle]; ok && p == item {
			record(item, 0, fmt.Errorf("%w: %s: %w", ErrEntryIO, item.Target, err))
			delete(pending, item.Handle)
		}
	}
}

func checkTarget(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q is not a plain file name", ErrEntryIO, name)
	}
	return nil
}

// stage copies one member to StagingDir/item.Target, truncating any file
// already there.
func (t *Task) stage(item Item, buf []byte) (int64, error) {
	if err := checkTarget(item.Target); err != nil {
		return 0, err
	}
	rc, err := t.Archive.Open(item.Handle)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEntryIO, item.Target, err)
	}
	defer rc.Close()
	return t.write(item.Target, rc, buf)
}

// write copies src to StagingDir/name.
func (t *Task) write(name string, src io.Reader, buf []byte) (int64, error) {
	dst, err := os.Create(filepath.Join(t.StagingDir, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntryIO, err)
	}
	n, err := io.CopyBuffer(dst, struct{ io.Reader }{src}, buf)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("%w: %s: %w", ErrEntryIO, name, err)
	}
	return n, nil
}
