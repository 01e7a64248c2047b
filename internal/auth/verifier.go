// Package auth verifies credentials and issues the session tokens that carry
// the current user through a request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/league"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown user, a wrong password or
// an inactive account. The cases are not told apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// UserStore is the persistence the verifier needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *league.User, passwordHash string) error
	GetCredentials(ctx context.Context, username string) (league.User, string, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type Verifier struct {
	store UserStore
	clock clockwork.Clock
	cost  int
}

func NewVerifier(store UserStore, clock clockwork.Clock) *Verifier {
	return &Verifier{store: store, clock: clock, cost: bcrypt.DefaultCost}
}

// Authenticate checks a username and password and stamps the login time.
func (v *Verifier) Authenticate(ctx context.Context, username, password string) (*league.User, error) {
	user, hash, err := v.store.GetCredentials(ctx, strings.TrimSpace(username))
	if errors.Is(err, league.ErrNotFound) {
		log.Debug("Login for unknown user", "username", username)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if !user.Active {
		log.Warn("Login attempt for inactive user", "userID", user.ID)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		log.Debug("Password mismatch", "userID", user.ID)
		return nil, ErrInvalidCredentials
	}

	now := v.clock.Now().UTC()
	if err := v.store.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Error("Failed to record last login", "userID", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}
	log.Info("User logged in", "userID", user.ID, "role", user.Role)
	return &user, nil
}

// Registration is a request to open an account.
type Registration struct {
	Username string `json:"username" yaml:"username"`
	FullName string `json:"full_name" yaml:"full_name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Role     string `json:"role" yaml:"role"`
}

func (r *Registration) validate() (league.Role, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.FullName == "" || r.Email == "" || r.Password == "" {
		return "", league.Invalid("username, full name, email and password are required")
	}
	if len(r.Username) < MinUsernameLength {
		return "", league.Invalid("username must be at least %d characters", MinUsernameLength)
	}
	if len(r.Password) < MinPasswordLength {
		return "", league.Invalid("password must be at least %d characters", MinPasswordLength)
	}
	if !emailPattern.MatchString(r.Email) {
		return "", league.Invalid("invalid email address %q", r.Email)
	}
	role := league.RolePlayer
	if strings.TrimSpace(r.Role) != "" {
		role = league.ParseRole(r.Role)
		if !role.Valid() {
			return "", league.Invalid("unknown role %q", r.Role)
		}
	}
	return role, nil
}

// Register creates an active account with a bcrypt-hashed password.
func (v *Verifier) Register(ctx context.Context, reg Registration) (*league.User, error) {
	role, err := reg.validate()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), v.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := league.User{
		Username: reg.Username,
		FullName: reg.FullName,
		Email:    reg.Email,
		Role:     role,
		Active:   true,
	}
	if err := v.store.CreateUser(ctx, &user, string(hash)); err != nil {
		return nil, err
	}
	return &user, nil
}
