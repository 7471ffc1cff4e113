package scheduler

import (
	"context"
	"time"

	"recruit-platform/internal/uploads"

	"go.uber.org/zap"
)

// ResumeIndex tells whether a stored resume is referenced by an application.
type ResumeIndex interface {
	ResumeReferenced(ctx context.Context, path string) (bool, error)
}

type FileStore interface {
	List() ([]uploads.File, error)
	Remove(path string) error
}

// UploadSweeper removes resume files left behind by applications that were never stored.
type UploadSweeper struct {
	index    ResumeIndex
	files    FileStore
	interval time.Duration
	grace    time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewUploadSweeper(index ResumeIndex, files FileStore, interval, grace time.Duration, logger *zap.Logger) *UploadSweeper {
	return &UploadSweeper{
		index:    index,
		files:    files,
		interval: interval,
		grace:    grace,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UploadSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("upload sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("grace", s.grace),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("upload sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and returns the number of removed files.
func (s *UploadSweeper) Sweep(ctx context.Context) int {
	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	files, err := s.files.List()
	if err != nil {
		s.logger.Error("failed to list uploads", zap.Error(err))
		return 0
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0

	for _, f := range files {
		if f.ModTime.After(cutoff) {
			continue
		}

		referenced, err := s.index.ResumeReferenced(dbCtx, f.Path)
		if err != nil {
			s.logger.Error("failed to check upload reference",
				zap.String("path", f.Path),
				zap.Error(err),
			)
			if dbCtx.Err() != nil {
				break
			}
			continue
		}
		if referenced {
			continue
		}

		if err := s.files.Remove(f.Path); err != nil {
			s.logger.Error("failed to remove orphaned upload",
				zap.String("path", f.Path),
				zap.Error(err),
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("orphaned uploads removed", zap.Int("count", removed))
	} else {
		s.logger.Debug("no orphaned uploads")
	}

	return removed
}
