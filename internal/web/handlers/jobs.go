package handlers

import (
	"net/http"
	"strings"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/models"
	"recruit-platform/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /company/post_job
func HandlePostJobPage(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "post_job", nil)
	}
}

// POST /company/post_job
func HandlePostJob(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		title := strings.TrimSpace(c.PostForm("title"))
		if title == "" {
			redirectWithFlash(c, "/company/post_job", auth.FlashDanger, "Title is required.")
			return
		}

		job := &models.JobPosting{
			CompanyID:      sess.UserID,
			Title:          title,
			Description:    c.PostForm("description"),
			RequiredSkills: c.PostForm("required_skills"),
			Experience:     c.PostForm("experience"),
			Status:         models.PostingStatusOpen,
		}

		dbCtx, cancel := requestContext(c)
		defer cancel()

		if err := ctx.Store.CreateJobPosting(dbCtx, job); err != nil {
			ctx.Logger.Error("failed to create job posting", zap.Int64("company_id", sess.UserID), zap.Error(err))
			ctx.unexpectedError(c, "/company/post_job", err)
			return
		}

		ctx.Logger.Info("job posted",
			zap.Int64("job_id", job.ID),
			zap.Int64("company_id", job.CompanyID),
		)

		redirectWithFlash(c, "/jobs", auth.FlashSuccess, "Job posted successfully")
	}
}

// GET /jobs
func HandleJobs(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbCtx, cancel := requestContext(c)
		defer cancel()

		jobs, err := ctx.Store.ListJobPostingsByStatus(dbCtx, models.PostingStatusOpen)
		if err != nil {
			ctx.Logger.Error("failed to list jobs", zap.Error(err))
			ctx.unexpectedError(c, "/", err)
			return
		}
		if jobs == nil {
			jobs = []models.JobPosting{}
		}

		render(c, http.StatusOK, "jobs", gin.H{"jobs": jobs})
	}
}

// GET /company/jobs/:job_id/applications
func HandleJobApplications(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		jobID, ok := parseJobID(c)
		if !ok {
			notFound(c, "Job not found")
			return
		}

		dbCtx, cancel := requestContext(c)
		defer cancel()

		job, err := ctx.Store.GetJobPosting(dbCtx, jobID)
		if err != nil {
			ctx.Logger.Error("get job failed", zap.Int64("job_id", jobID), zap.Error(err))
			ctx.unexpectedError(c, "/jobs", err)
			return
		}
		if job == nil {
			notFound(c, "Job not found")
			return
		}

		if job.CompanyID != sess.UserID {
			ctx.Logger.Warn("applications requested by non-owner",
				zap.Int64("job_id", jobID),
				zap.Int64("user_id", sess.UserID),
			)
			redirectWithFlash(c, "/signin", auth.FlashDanger, "Unauthorized access")
			return
		}

		apps, err := ctx.Store.ListApplicationsByJob(dbCtx, jobID)
		if err != nil {
			ctx.Logger.Error("failed to list applications", zap.Int64("job_id", jobID), zap.Error(err))
			ctx.unexpectedError(c, "/jobs", err)
			return
		}

		render(c, http.StatusOK, "job_applications", gin.H{
			"job":          job,
			"applications": ctx.Ranker.Rank(apps),
		})
	}
}
