package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/models"
	"recruit-platform/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const quizUnavailableMessage = "Quiz generation is unavailable right now. Please try again later."

// GET /quiz
func HandleQuiz(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		reqCtx, cancel := requestContext(c)
		defer cancel()

		quiz, err := ctx.Cache.GetQuiz(reqCtx, sess.UserID)
		if err != nil {
			ctx.Logger.Warn("quiz cache read failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		}

		if quiz == "" {
			// The upstream call carries its own timeout.
			quiz, err = ctx.Quiz.GenerateQuiz(c.Request.Context())
			if err != nil {
				ctx.Logger.Error("quiz generation failed", zap.Int64("user_id", sess.UserID), zap.Error(err))

				message := quizUnavailableMessage
				if ctx.Config.Debug {
					message = err.Error()
				}
				c.JSON(http.StatusBadGateway, gin.H{"error": message})
				return
			}

			if quiz != "" {
				if err := ctx.Cache.SetQuiz(reqCtx, sess.UserID, quiz, ctx.Config.QuizCacheTTL); err != nil {
					ctx.Logger.Warn("quiz cache write failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
				}
			}
		}

		render(c, http.StatusOK, "quiz", gin.H{"quiz": quiz})
	}
}

// POST /submit_quiz
func HandleSubmitQuiz(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		answers := models.ParseAnswers([]byte(c.PostForm("answers")))

		score := models.ScoreAnswers(answers)

		data, err := json.Marshal(answers)
		if err != nil {
			ctx.unexpectedError(c, "/quiz", err)
			return
		}

		assessment := &models.QuizAssessment{
			UserID:   sess.UserID,
			QuizData: models.RawJSON(data),
			Score:    score,
		}

		dbCtx, cancel := requestContext(c)
		defer cancel()

		if err := ctx.Store.SaveQuizAssessment(dbCtx, assessment); err != nil {
			ctx.Logger.Error("failed to save quiz assessment", zap.Int64("user_id", sess.UserID), zap.Error(err))
			ctx.unexpectedError(c, "/quiz", err)
			return
		}

		if err := ctx.Cache.DeleteQuiz(dbCtx, sess.UserID); err != nil {
			ctx.Logger.Warn("quiz cache delete failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		}

		ctx.Logger.Info("quiz submitted",
			zap.Int64("user_id", sess.UserID),
			zap.Int("score", score),
			zap.Int("answers", len(answers)),
		)

		redirectWithFlash(c, "/quiz", auth.FlashSuccess, fmt.Sprintf("Quiz submitted successfully. Your score: %d", score))
	}
}

// GET /quiz/results
func HandleQuizResults(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		dbCtx, cancel := requestContext(c)
		defer cancel()

		assessments, err := ctx.Store.ListQuizAssessments(dbCtx, sess.UserID)
		if err != nil {
			ctx.Logger.Error("failed to list quiz assessments", zap.Int64("user_id", sess.UserID), zap.Error(err))
			ctx.unexpectedError(c, "/", err)
			return
		}
		if assessments == nil {
			assessments = []models.QuizAssessment{}
		}

		render(c, http.StatusOK, "quiz_results", gin.H{"assessments": assessments})
	}
}
