package notify

import (
	"context"

	"recruit-platform/internal/models"
)

// Notifier is told about events staff may want to act on.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, job *models.JobPosting, app *models.Application) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) ApplicationSubmitted(context.Context, *models.JobPosting, *models.Application) error {
	return nil
}
