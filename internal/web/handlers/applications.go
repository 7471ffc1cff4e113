package handlers

import (
	"errors"
	"net/http"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/models"
	"recruit-platform/internal/uploads"
	"recruit-platform/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const resumeField = "resume"

// loadJob resolves :job_id, answering 404 itself when the posting does not exist.
func (ctx *Context) loadJob(c *gin.Context) (*models.JobPosting, bool) {
	jobID, ok := parseJobID(c)
	if !ok {
		notFound(c, "Job not found")
		return nil, false
	}

	dbCtx, cancel := requestContext(c)
	defer cancel()

	job, err := ctx.Store.GetJobPosting(dbCtx, jobID)
	if err != nil {
		ctx.Logger.Error("get job failed", zap.Int64("job_id", jobID), zap.Error(err))
		ctx.unexpectedError(c, "/jobs", err)
		return nil, false
	}
	if job == nil {
		notFound(c, "Job not found")
		return nil, false
	}

	return job, true
}

// GET /apply/:job_id
func HandleApplyPage(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := ctx.loadJob(c)
		if !ok {
			return
		}

		render(c, http.StatusOK, "apply", gin.H{"job": job})
	}
}

// POST /apply/:job_id
func HandleApply(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		self := c.Request.URL.Path

		job, ok := ctx.loadJob(c)
		if !ok {
			return
		}

		header, err := c.FormFile(resumeField)
		if err != nil {
			// A part sent with an empty filename is parsed as a plain value.
			if form := c.Request.MultipartForm; form != nil && len(form.Value[resumeField]) > 0 {
				redirectWithFlash(c, self, auth.FlashDanger, "No selected file")
				return
			}
			redirectWithFlash(c, self, auth.FlashDanger, "No file part")
			return
		}

		path, err := ctx.Uploads.Save(header)
		switch {
		case errors.Is(err, uploads.ErrNoFile):
			redirectWithFlash(c, self, auth.FlashDanger, "No file part")
			return
		case errors.Is(err, uploads.ErrEmptyFile):
			redirectWithFlash(c, self, auth.FlashDanger, "No selected file")
			return
		case err != nil:
			ctx.Logger.Error("failed to save resume", zap.Int64("job_id", job.ID), zap.Error(err))
			ctx.unexpectedError(c, self, err)
			return
		}

		app := &models.Application{
			JobID:       job.ID,
			CandidateID: sess.UserID,
			ResumePath:  path,
			Status:      models.ApplicationStatusPending,
		}

		dbCtx, cancel := requestContext(c)
		defer cancel()

		if err := ctx.Store.CreateApplication(dbCtx, app); err != nil {
			ctx.Logger.Error("failed to create application",
				zap.Int64("job_id", job.ID),
				zap.Int64("candidate_id", sess.UserID),
				zap.Error(err),
			)
			if rmErr := ctx.Uploads.Remove(path); rmErr != nil {
				ctx.Logger.Warn("failed to remove resume", zap.String("path", path), zap.Error(rmErr))
			}
			ctx.unexpectedError(c, self, err)
			return
		}

		ctx.Logger.Info("application submitted",
			zap.Int64("application_id", app.ID),
			zap.Int64("job_id", job.ID),
			zap.Int64("candidate_id", sess.UserID),
		)

		if err := ctx.Notifier.ApplicationSubmitted(dbCtx, job, app); err != nil {
			ctx.Logger.Warn("application notification failed", zap.Int64("application_id", app.ID), zap.Error(err))
		}

		redirectWithFlash(c, "/applied_jobs", auth.FlashSuccess, "Application submitted successfully")
	}
}

// GET /applied_jobs
func HandleAppliedJobs(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		dbCtx, cancel := requestContext(c)
		defer cancel()

		apps, err := ctx.Store.ListApplicationsByCandidate(dbCtx, sess.UserID)
		if err != nil {
			ctx.Logger.Error("failed to list applications", zap.Int64("candidate_id", sess.UserID), zap.Error(err))
			ctx.unexpectedError(c, "/", err)
			return
		}
		if apps == nil {
			apps = []models.Application{}
		}

		render(c, http.StatusOK, "applied_jobs", gin.H{"applications": apps})
	}
}
