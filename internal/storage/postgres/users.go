package postgres

import (
	"context"
	"fmt"
	"time"

	"recruit-platform/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

const usersEmailKey = "users_email_key"

// CreateUser inserts the user and fills in ID and CreatedAt.
// A taken email yields models.ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()

	err := s.withTx(ctx, func(tx *dbr.Tx) error {
		return tx.
			InsertInto("users").
			Columns("user_type", "email", "password_hash", "created_at").
			Values(user.UserType, user.Email, user.PasswordHash, user.CreatedAt).
			Returning("id").
			LoadContext(ctx, &user.ID)
	})

	if isUniqueViolation(err, usersEmailKey) {
		s.logger.Info("signup with taken email", zap.String("email", user.Email))
		return models.ErrDuplicateEmail
	}

	if err != nil {
		s.logger.Error("failed to create user",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created",
		zap.Int64("user_id", user.ID),
		zap.String("user_type", string(user.UserType)),
	)

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select("*").
		From("users").
		Where("email = ?", email).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}
