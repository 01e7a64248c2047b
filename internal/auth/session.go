package auth

import (
	"context"
	"time"

	"github.com/mauv0809/sports-manager/internal/league"
)

// Session is the authenticated user of one request. It is passed explicitly
// through the context; there is no process-wide current user.
type Session struct {
	User      league.User `json:"user"`
	IssuedAt  time.Time   `json:"issued_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
