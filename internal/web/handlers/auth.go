package handlers

import (
	"errors"
	"net/http"
	"strings"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/models"
	"recruit-platform/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var userTypes = []models.UserType{
	models.UserTypeCandidate,
	models.UserTypeCompany,
	models.UserTypeFreelancer,
}

// GET /signup
func HandleSignupPage(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "signup", gin.H{"user_types": userTypes})
	}
}

// POST /signup
func HandleSignup(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")

		if email == "" || password == "" || c.PostForm("user_type") == "" {
			redirectWithFlash(c, "/signup", auth.FlashDanger, "Email, password and user type are required.")
			return
		}

		userType, err := models.ParseUserType(c.PostForm("user_type"))
		if err != nil {
			redirectWithFlash(c, "/signup", auth.FlashDanger, "Invalid user type.")
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			ctx.Logger.Error("failed to hash password", zap.Error(err))
			ctx.unexpectedError(c, "/signup", err)
			return
		}

		dbCtx, cancel := requestContext(c)
		defer cancel()

		user := &models.User{
			UserType:     userType,
			Email:        email,
			PasswordHash: hash,
		}

		if err := ctx.Store.CreateUser(dbCtx, user); err != nil {
			if errors.Is(err, models.ErrDuplicateEmail) {
				ctx.Logger.Info("signup with registered email", zap.String("email", email))
				redirectWithFlash(c, "/signup", auth.FlashDanger, "An account with this email already exists. Please try signing in.")
				return
			}
			ctx.Logger.Error("failed to create user", zap.String("email", email), zap.Error(err))
			ctx.unexpectedError(c, "/signup", err)
			return
		}

		ctx.Logger.Info("new user created",
			zap.Int64("user_id", user.ID),
			zap.String("user_type", string(user.UserType)),
		)

		redirectWithFlash(c, "/signin", auth.FlashSuccess, "User created successfully. Please sign in.")
	}
}

// GET /signin
func HandleSigninPage(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "signin", nil)
	}
}

// POST /signin
func HandleSignin(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")
		sess := middleware.CurrentSession(c)

		dbCtx, cancel := requestContext(c)
		defer cancel()

		user, err := ctx.Store.GetUserByEmail(dbCtx, email)
		if err != nil {
			ctx.Logger.Error("get user failed", zap.String("email", email), zap.Error(err))
			ctx.unexpectedError(c, "/signin", err)
			return
		}

		if user == nil || auth.CheckPassword(user.PasswordHash, password) != nil {
			ctx.Logger.Info("failed sign in", zap.String("email", email))
			sess.AddFlash(auth.FlashDanger, "Invalid credentials.")
			render(c, http.StatusOK, "signin", nil)
			return
		}

		middleware.RenewSession(c)
		sess.SignIn(user)

		ctx.Logger.Info("user signed in", zap.Int64("user_id", user.ID))

		redirectWithFlash(c, "/", auth.FlashSuccess, "Signed in successfully.")
	}
}

// GET /logout
func HandleLogout(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		userID := sess.UserID

		sess.Clear()

		if userID != 0 {
			ctx.Logger.Info("user logged out", zap.Int64("user_id", userID))
		}

		redirectWithFlash(c, "/", auth.FlashSuccess, "Logged out successfully.")
	}
}
