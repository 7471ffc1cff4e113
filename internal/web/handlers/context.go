package handlers

import (
	"context"
	"time"

	"recruit-platform/internal/config"
	"recruit-platform/internal/models"
	"recruit-platform/internal/notify"
	"recruit-platform/internal/ranking"
	"recruit-platform/internal/uploads"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Store is the persistence the handlers need; postgres.Store satisfies it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateJobPosting(ctx context.Context, job *models.JobPosting) error
	GetJobPosting(ctx context.Context, jobID int64) (*models.JobPosting, error)
	ListJobPostingsByStatus(ctx context.Context, status models.PostingStatus) ([]models.JobPosting, error)

	CreateApplication(ctx context.Context, app *models.Application) error
	ListApplicationsByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error)

	SaveQuizAssessment(ctx context.Context, a *models.QuizAssessment) error
	ListQuizAssessments(ctx context.Context, userID int64) ([]models.QuizAssessment, error)
}

// Cache holds generated quizzes between page loads; redis.Cache satisfies it.
type Cache interface {
	Ping(ctx context.Context) error
	GetQuiz(ctx context.Context, userID int64) (string, error)
	SetQuiz(ctx context.Context, userID int64, quiz string, ttl time.Duration) error
	DeleteQuiz(ctx context.Context, userID int64) error
}

type QuizGenerator interface {
	GenerateQuiz(ctx context.Context) (string, error)
}

// Context contains deps for all handlers
type Context struct {
	Store    Store
	Cache    Cache
	Quiz     QuizGenerator
	Uploads  *uploads.Store
	Notifier notify.Notifier
	Ranker   *ranking.Ranker
	Config   *config.Config
	Logger   *zap.Logger
}
