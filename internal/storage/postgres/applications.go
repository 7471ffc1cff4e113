package postgres

import (
	"context"
	"fmt"
	"time"

	"recruit-platform/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	app.CreatedAt = time.Now()

	err := s.withTx(ctx, func(tx *dbr.Tx) error {
		return tx.
			InsertInto("applications").
			Columns("job_id", "candidate_id", "resume_path", "status", "created_at").
			Values(app.JobID, app.CandidateID, app.ResumePath, app.Status, app.CreatedAt).
			Returning("id").
			LoadContext(ctx, &app.ID)
	})

	if err != nil {
		s.logger.Error("failed to create application",
			zap.Int64("job_id", app.JobID),
			zap.Int64("candidate_id", app.CandidateID),
			zap.Error(err),
		)
		return fmt.Errorf("create application: %w", err)
	}

	s.logger.Info("application created",
		zap.Int64("application_id", app.ID),
		zap.Int64("job_id", app.JobID),
		zap.Int64("candidate_id", app.CandidateID),
	)

	return nil
}

func (s *Store) ListApplicationsByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error) {
	return s.listApplications(ctx, "candidate_id", candidateID)
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	return s.listApplications(ctx, "job_id", jobID)
}

func (s *Store) listApplications(ctx context.Context, column string, id int64) ([]models.Application, error) {
	apps := []models.Application{}

	_, err := s.sess.
		Select("*").
		From("applications").
		Where(dbr.Eq(column, id)).
		OrderBy("id").
		LoadContext(ctx, &apps)

	if err != nil {
		s.logger.Error("failed to list applications",
			zap.String("by", column),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applications by %s: %w", column, err)
	}

	return apps, nil
}

// ResumeReferenced reports whether any application points at the stored file.
func (s *Store) ResumeReferenced(ctx context.Context, path string) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("applications").
		Where("resume_path = ?", path).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check resume reference",
			zap.String("path", path),
			zap.Error(err),
		)
		return false, fmt.Errorf("resume referenced: %w", err)
	}

	return count > 0, nil
}
