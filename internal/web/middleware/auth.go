package middleware

import (
	"net/http"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole gates a route on auth.Authorize. An empty role only requires a
// signed-in session. Denied requests are redirected to the sign-in page.
func RequireRole(role models.UserType, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)

		if err := auth.Authorize(sess, role); err != nil {
			logger.Debug("access denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("required_role", string(role)),
				zap.Int64("user_id", sess.UserID),
			)

			if role == "" {
				sess.AddFlash(auth.FlashWarning, "Please sign in first.")
			} else {
				sess.AddFlash(auth.FlashDanger, "Unauthorized access")
			}

			c.Redirect(http.StatusFound, "/signin")
			c.Abort()
			return
		}

		c.Next()
	}
}
