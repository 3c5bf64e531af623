// Package preview builds the navigable tree of an uploaded archive and hands
// its files to background extraction.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/archive"
	"github.com/dendrascience/archive-preview/extract"
	"github.com/dendrascience/archive-preview/internal/metrics"
	"github.com/dendrascience/archive-preview/tree"
	"github.com/dendrascience/archive-preview/util"
)

// Result is one finished build.
type Result struct {
	Tree   *tree.Tree
	Format archive.Format
	TaskID uuid.UUID // zero when nothing was scheduled
}

// Service builds previews. It is safe for concurrent use.
type Service struct {
	scheduler       *extract.Scheduler
	fallbackCharset string
	logger          *zap.Logger
}

// NewService returns a Service that schedules extraction on scheduler. A nil
// scheduler is allowed for Inspect-only use.
func NewService(scheduler *extract.Scheduler, fallbackCharset string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scheduler:       scheduler,
		fallbackCharset: fallbackCharset,
		logger:          logger,
	}
}

// NamingFor returns the naming rules for an archive of format f whose base
// name is archiveName.
func NamingFor(f archive.Format, archiveName string) tree.Naming {
	if f == archive.FormatRar {
		return tree.RarNaming{Archive: archiveName}
	}
	return tree.ZipNaming{Archive: archiveName}
}

// Build enumerates the archive at path, returns its tree and queues the
// extraction of its files. On error no tree is returned, nothing is
// scheduled and the source file is left in place.
//
// The archive handle and the source file belong to the extraction task once
// Build succeeds; the source is deleted when the task finishes.
func (s *Service) Build(ctx context.Context, path string) (*Result, error) {
	if s.scheduler == nil {
		return nil, fmt.Errorf("preview of %s: no extraction scheduler configured", path)
	}
	a, t, items, err := s.build(ctx, path)
	if err != nil {
		return nil, err
	}
	id := s.scheduler.Schedule(a, items)
	return &Result{Tree: t, Format: a.Format(), TaskID: id}, nil
}

// Inspect builds the tree like Build but extracts nothing and leaves the
// source file alone.
func (s *Service) Inspect(ctx context.Context, path string) (*Result, error) {
	a, t, _, err := s.build(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := a.Close(); err != nil {
		s.logger.Warn("closing archive", zap.String("archive", path), zap.Error(err))
	}
	return &Result{Tree: t, Format: a.Format()}, nil
}

// BuildJSON is Build followed by serializing the tree.
func (s *Service) BuildJSON(ctx context.Context, path string) ([]byte, error) {
	r, err := s.Build(ctx, path)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r.Tree)
}

func (s *Service) build(ctx context.Context, path string) (archive.Archive, *tree.Tree, []extract.Item, error) {
	start := time.Now()
	log := s.logger.With(zap.String("archive", path))

	a, err := archive.Open(ctx, path, archive.Options{
		FallbackCharset: s.fallbackCharset,
		OnCharsetWarning: func(err error) {
			log.Warn("charset detection failed, using default", zap.Error(err))
		},
	})
	if err != nil {
		metrics.RecordBuild("", time.Since(start), false)
		return nil, nil, nil, err
	}
	format := string(a.Format())

	entries := slices.Clone(a.Entries())
	tree.SortByPathLength(entries, func(e archive.Entry) string { return e.FullPath })

	b := tree.NewBuilder(NamingFor(a.Format(), util.BaseName(path)))
	var items []extract.Item
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			a.Close()
			metrics.RecordBuild(format, time.Since(start), false)
			return nil, nil, nil, err
		}
		_, names := b.Add(e.FullPath, e.IsDir)
		if !e.IsDir {
			items = append(items, extract.Item{Target: names.Key, Handle: e.Handle})
		}
	}

	t := b.Tree()
	metrics.RecordBuild(format, time.Since(start), true)
	log.Debug("tree built",
		zap.String("format", format),
		zap.Int("entries", len(entries)),
		zap.Int("nodes", t.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return a, t, items, nil
}
