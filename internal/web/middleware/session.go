package middleware

import (
	"context"
	"net/http"
	"time"

	"recruit-platform/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionContextKey = "session"
	sessionStateKey   = "session_state"
)

type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (*auth.Session, error)
	SetSession(ctx context.Context, sessionID string, sess *auth.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

type SessionOptions struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// sessionState tracks the id the session is saved under for this request.
type sessionState struct {
	id    string
	fresh bool
	stale string
	opts  SessionOptions
}

// Session loads the session named by the cookie before the handler runs and
// persists it afterwards when the handler changed it.
func Session(store SessionStore, opts SessionOptions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)

		var sess *auth.Session
		state := &sessionState{opts: opts}

		sessionID, err := c.Cookie(opts.CookieName)
		if err == nil && sessionID != "" {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			sess, err = store.GetSession(ctx, sessionID)
			cancel()
			if err != nil {
				logger.Error("failed to load session", zap.Error(err))
				sess = nil
			}
		}

		if sess == nil {
			sess = &auth.Session{}
			state.issue(c)
		} else {
			state.id = sessionID
		}

		c.Set(sessionContextKey, sess)
		c.Set(sessionStateKey, state)

		c.Next()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
		defer cancel()

		if state.stale != "" {
			if err := store.DeleteSession(ctx, state.stale); err != nil {
				logger.Error("failed to delete rotated session", zap.Error(err))
			}
		}

		if !sess.Modified() && state.stale == "" {
			return
		}

		if sess.Empty() {
			err = store.DeleteSession(ctx, state.id)
		} else {
			err = store.SetSession(ctx, state.id, sess, opts.TTL)
		}
		if err != nil {
			logger.Error("failed to save session",
				zap.Int64("user_id", sess.UserID),
				zap.Error(err),
			)
		}
	}
}

// issue mints a fresh id and sends it as the session cookie.
func (s *sessionState) issue(c *gin.Context) {
	s.id = uuid.NewString()
	s.fresh = true
	c.SetCookie(s.opts.CookieName, s.id, int(s.opts.TTL.Seconds()), "/", "", s.opts.Secure, true)
}

// RenewSession moves the current session to a new id before the response is
// written. The old id is deleted once the handler returns. Call it before a
// privilege change such as sign-in.
func RenewSession(c *gin.Context) {
	v, ok := c.Get(sessionStateKey)
	if !ok {
		return
	}
	state, ok := v.(*sessionState)
	if !ok {
		return
	}

	// an id minted during this request was never seen by anyone else
	if state.fresh {
		return
	}

	state.stale = state.id
	state.issue(c)
}

// CurrentSession returns the request's session, or an empty one that is never
// persisted when the Session middleware is not installed.
func CurrentSession(c *gin.Context) *auth.Session {
	if sess := sessionFromContext(c); sess != nil {
		return sess
	}
	return &auth.Session{}
}

func sessionFromContext(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*auth.Session)
	return sess
}
