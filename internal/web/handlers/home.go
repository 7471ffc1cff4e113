package handlers

import (
	"net/http"

	"recruit-platform/internal/web/middleware"

	"github.com/gin-gonic/gin"
)

// GET /
func HandleHome(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		data := gin.H{"signed_in": sess.Authenticated()}
		if sess.Authenticated() {
			data["user_email"] = sess.UserEmail
			data["user_type"] = sess.UserType
		}

		render(c, http.StatusOK, "home", data)
	}
}
