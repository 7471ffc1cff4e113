package postgres

import (
	"context"
	"fmt"
	"time"

	"recruit-platform/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) SaveQuizAssessment(ctx context.Context, a *models.QuizAssessment) error {
	a.CreatedAt = time.Now()

	err := s.withTx(ctx, func(tx *dbr.Tx) error {
		return tx.
			InsertInto("quiz_assessments").
			Columns("user_id", "quiz_data", "score", "created_at").
			Values(a.UserID, a.QuizData, a.Score, a.CreatedAt).
			Returning("id").
			LoadContext(ctx, &a.ID)
	})

	if err != nil {
		s.logger.Error("failed to save quiz assessment",
			zap.Int64("user_id", a.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("save quiz assessment: %w", err)
	}

	s.logger.Info("quiz assessment saved",
		zap.Int64("user_id", a.UserID),
		zap.Int("score", a.Score),
	)

	return nil
}

func (s *Store) ListQuizAssessments(ctx context.Context, userID int64) ([]models.QuizAssessment, error) {
	assessments := []models.QuizAssessment{}

	_, err := s.sess.
		Select("*").
		From("quiz_assessments").
		Where("user_id = ?", userID).
		OrderDesc("created_at").
		LoadContext(ctx, &assessments)

	if err != nil {
		s.logger.Error("failed to list quiz assessments",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list quiz assessments: %w", err)
	}

	return assessments, nil
}
