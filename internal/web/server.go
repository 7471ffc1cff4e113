package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"recruit-platform/internal/models"
	"recruit-platform/internal/web/handlers"
	"recruit-platform/internal/web/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxUploadMemory   = 8 << 20
)

// Server represents the HTTP front of the platform
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewRouter wires middleware and routes. Sessions and the rate limiter are
// usually both backed by the redis cache.
func NewRouter(ctx *handlers.Context, sessions middleware.SessionStore, limiter middleware.RateCounter) *gin.Engine {
	cfg := ctx.Config

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory

	// ClientIP keys the rate limiter, so forwarding headers count only from known proxies.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		ctx.Logger.Error("invalid trusted proxies, trusting none", zap.Error(err))
		r.SetTrustedProxies(nil)
	}

	setupMiddleware(r, ctx, sessions, limiter)
	registerHandlers(r, ctx)

	ctx.Logger.Info("handlers registered")

	return r
}

func setupMiddleware(r *gin.Engine, ctx *handlers.Context, sessions middleware.SessionStore, limiter middleware.RateCounter) {
	cfg := ctx.Config

	r.Use(middleware.Recovery(ctx.Logger))

	r.Use(middleware.Logger(ctx.Logger))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Registered ahead of the limiter and sessions so probes never touch either.
	r.GET("/health", handlers.HandleHealth(ctx))

	r.Use(middleware.RateLimit(limiter, cfg.RateLimitPerMinute, ctx.Logger))

	r.Use(middleware.Session(sessions, middleware.SessionOptions{
		CookieName: cfg.SessionCookieName,
		Secure:     cfg.SessionCookieSecure,
		TTL:        cfg.SessionTTL,
	}, ctx.Logger))
}

func registerHandlers(r *gin.Engine, ctx *handlers.Context) {
	signedIn := middleware.RequireRole("", ctx.Logger)
	company := middleware.RequireRole(models.UserTypeCompany, ctx.Logger)
	candidate := middleware.RequireRole(models.UserTypeCandidate, ctx.Logger)

	r.GET("/", handlers.HandleHome(ctx))

	r.GET("/signup", handlers.HandleSignupPage(ctx))
	r.POST("/signup", handlers.HandleSignup(ctx))
	r.GET("/signin", handlers.HandleSigninPage(ctx))
	r.POST("/signin", handlers.HandleSignin(ctx))
	r.GET("/logout", handlers.HandleLogout(ctx))

	r.GET("/quiz", signedIn, handlers.HandleQuiz(ctx))
	r.POST("/submit_quiz", signedIn, handlers.HandleSubmitQuiz(ctx))
	r.GET("/quiz/results", signedIn, handlers.HandleQuizResults(ctx))

	companyRoutes := r.Group("/company", company)
	companyRoutes.GET("/post_job", handlers.HandlePostJobPage(ctx))
	companyRoutes.POST("/post_job", handlers.HandlePostJob(ctx))
	companyRoutes.GET("/jobs/:job_id/applications", handlers.HandleJobApplications(ctx))

	r.GET("/jobs", handlers.HandleJobs(ctx))

	r.GET("/apply/:job_id", candidate, handlers.HandleApplyPage(ctx))
	r.POST("/apply/:job_id", candidate, handlers.HandleApply(ctx))
	r.GET("/applied_jobs", candidate, handlers.HandleAppliedJobs(ctx))
}

func New(addr string, router http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server...", zap.String("addr", s.httpServer.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("stopping http server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	s.logger.Info("http server stopped")

	return nil
}
