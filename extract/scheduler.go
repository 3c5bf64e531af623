package extract

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dendrascience/archive-preview/archive"
)

// Scheduler turns the file list of one preview build into a Task on a Pool.
type Scheduler struct {
	pool       *Pool
	stagingDir string
	logger     *zap.Logger
	notify     func(Report)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger handed to every task.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithNotify registers fn to receive the Report of every finished task. fn
// runs on the worker goroutine.
func WithNotify(fn func(Report)) Option {
	return func(s *Scheduler) { s.notify = fn }
}

// NewScheduler returns a Scheduler that stages files into stagingDir using
// pool.
func NewScheduler(pool *Pool, stagingDir string, opts ...Option) *Scheduler {
	s := &Scheduler{
		pool:       pool,
		stagingDir: stagingDir,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StagingDir returns the directory tasks write into.
func (s *Scheduler) StagingDir() string {
	return s.stagingDir
}

// Schedule queues one task that stages items from a and returns its ID
// without waiting. Ownership of a passes to the task, which closes it and
// deletes its source file when done, even if items is empty.
func (s *Scheduler) Schedule(a archive.Archive, items []Item) uuid.UUID {
	src := a.Path()
	task := &Task{
		ID:         uuid.New(),
		Archive:    a,
		Items:      items,
		StagingDir: s.stagingDir,
		Logger:     s.logger,
	}
	run := func() {
		r := task.Run()
		if s.notify != nil {
			s.notify(r)
		}
	}

	if err := s.pool.Submit(run); err != nil {
		s.logger.Warn("pool closed, running extraction unpooled",
			zap.Stringer("task", task.ID), zap.Error(err))
		go run()
	}
	s.logger.Debug("extraction scheduled",
		zap.Stringer("task", task.ID),
		zap.String("archive", src),
		zap.Int("items", len(items)),
	)
	return task.ID
}
