package handlers

import (
	"context"
	"net/http"
	"strconv"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/web/middleware"

	"github.com/gin-gonic/gin"
)

const unexpectedErrorMessage = "An unexpected error occurred. Please try again later."

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// render writes a page and consumes the pending flashes.
func render(c *gin.Context, status int, page string, data gin.H) {
	flashes := middleware.CurrentSession(c).PopFlashes()
	if flashes == nil {
		flashes = []auth.Flash{}
	}

	body := gin.H{
		"page":    page,
		"flashes": flashes,
	}
	for k, v := range data {
		body[k] = v
	}

	c.JSON(status, body)
}

func redirectWithFlash(c *gin.Context, location, category, message string) {
	middleware.CurrentSession(c).AddFlash(category, message)
	c.Redirect(http.StatusFound, location)
}

// unexpectedError hides err from the user unless debug mode is on.
func (ctx *Context) unexpectedError(c *gin.Context, location string, err error) {
	message := unexpectedErrorMessage
	if ctx.Config.Debug {
		message = err.Error()
	}
	redirectWithFlash(c, location, auth.FlashDanger, message)
}

func notFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": message})
}

func parseJobID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
