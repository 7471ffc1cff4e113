package postgres

import (
	"context"
	"fmt"
	"time"

	"recruit-platform/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateJobPosting(ctx context.Context, job *models.JobPosting) error {
	job.CreatedAt = time.Now()

	err := s.withTx(ctx, func(tx *dbr.Tx) error {
		return tx.
			InsertInto("job_postings").
			Columns("company_id", "title", "description", "required_skills", "experience", "status", "created_at").
			Values(job.CompanyID, job.Title, job.Description, job.RequiredSkills, job.Experience, job.Status, job.CreatedAt).
			Returning("id").
			LoadContext(ctx, &job.ID)
	})

	if err != nil {
		s.logger.Error("failed to create job posting",
			zap.Int64("company_id", job.CompanyID),
			zap.Error(err),
		)
		return fmt.Errorf("create job posting: %w", err)
	}

	s.logger.Info("job posting created",
		zap.Int64("job_id", job.ID),
		zap.Int64("company_id", job.CompanyID),
		zap.String("status", string(job.Status)),
	)

	return nil
}

func (s *Store) GetJobPosting(ctx context.Context, jobID int64) (*models.JobPosting, error) {
	var job models.JobPosting

	err := s.sess.
		Select("*").
		From("job_postings").
		Where("id = ?", jobID).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get job posting",
			zap.Int64("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job posting: %w", err)
	}

	return &job, nil
}

func (s *Store) ListJobPostingsByStatus(ctx context.Context, status models.PostingStatus) ([]models.JobPosting, error) {
	jobs := []models.JobPosting{}

	_, err := s.sess.
		Select("*").
		From("job_postings").
		Where("status = ?", status).
		OrderBy("id").
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to list job postings",
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list job postings: %w", err)
	}

	s.logger.Debug("job postings listed",
		zap.String("status", string(status)),
		zap.Int("count", len(jobs)),
	)

	return jobs, nil
}
