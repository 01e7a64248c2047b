package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/sports-manager/internal/league"
)

const userColumns = "id, username, full_name, email, role, is_active, last_login"

func scanUser(sc scanner, extra ...any) (league.User, error) {
	var (
		u         league.User
		lastLogin sql.NullInt64
	)
	dest := append([]any{&u.ID, &u.Username, &u.FullName, &u.Email, &u.Role, &u.Active, &lastLogin}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return league.User{}, err
	}
	if lastLogin.Valid {
		at := time.Unix(lastLogin.Int64, 0).UTC()
		u.LastLogin = &at
	}
	return u, nil
}

// CreateUser stores a new account. Field validation belongs to the caller; the
// store only guarantees unique usernames.
func (s *store) CreateUser(ctx context.Context, user *league.User, passwordHash string) error {
	if strings.TrimSpace(user.Username) == "" || passwordHash == "" {
		return league.Invalid("username and password are required")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	_, err := s.exec(ctx, `
		INSERT INTO users (id, username, full_name, email, role, is_active, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.FullName, user.Email, user.Role, user.Active, passwordHash, time.Now().Unix())
	if err != nil {
		return conflict(err, "username %q or email %q is already registered", user.Username, user.Email)
	}
	log.Info("User registered", "userID", user.ID, "username", user.Username, "role", user.Role)
	return nil
}

func (s *store) GetUser(ctx context.Context, id string) (league.User, error) {
	u, err := scanUser(s.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return league.User{}, notFound(err, "user", id)
	}
	return u, nil
}

func (s *store) GetCredentials(ctx context.Context, username string) (league.User, string, error) {
	var hash string
	u, err := scanUser(s.queryRow(ctx, "SELECT "+userColumns+", password_hash FROM users WHERE username = ?", username), &hash)
	if err != nil {
		return league.User{}, "", notFound(err, "user", username)
	}
	return u, hash, nil
}

func (s *store) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return s.execOne(ctx, "user", userID, "UPDATE users SET last_login = ? WHERE id = ?", at.Unix(), userID)
}
