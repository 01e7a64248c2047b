package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/league"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
// 'verbose' lowers the level of the request's own logger, which handlers get
// with log.FromContext. The package logger keeps its level.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.With("method", r.Method, "path", r.URL.Path)
		if r.URL.Query().Get("verbose") == "true" {
			logger.SetLevel(log.DebugLevel)
		}
		logger.Info("incoming request", "url", r.URL.String())

		// dry_run suppresses outbound notifications and events, never data writes.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := log.WithContext(r.Context(), logger)
		ctx = context.WithValue(ctx, dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// authMiddleware resolves the bearer token to a session. The user is reloaded
// on every request so deactivated accounts and role changes apply at once.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessionFromRequest(r)
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
	})
}

func (s *Server) sessionFromRequest(r *http.Request) (auth.Session, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return auth.Session{}, auth.ErrInvalidToken
	}
	claims, err := s.Tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		log.FromContext(r.Context()).Debug("Rejected session token", "error", err)
		return auth.Session{}, err
	}
	user, err := s.Store.GetUser(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return auth.Session{}, auth.ErrInvalidToken
		}
		return auth.Session{}, err
	}
	if !user.Active {
		return auth.Session{}, auth.ErrInvalidToken
	}
	return auth.Session{User: user, IssuedAt: claims.IssuedAt.Time, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// session returns the session set by authMiddleware.
func session(r *http.Request) auth.Session {
	sess, _ := auth.FromContext(r.Context())
	return sess
}
