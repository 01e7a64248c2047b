// Package access decides which operations a role may perform. Every
// predicate is fail-closed: a role it does not recognize gets nothing.
package access

import (
	"errors"
	"fmt"

	"github.com/mauv0809/sports-manager/internal/league"
)

// ErrPermissionDenied is returned when a predicate refuses an operation.
var ErrPermissionDenied = errors.New("permission denied")

// CanModify is true for admins and managers.
func CanModify(role league.Role) bool {
	switch role {
	case league.RoleAdmin, league.RoleManager:
		return true
	}
	return false
}

// CanDelete is true only for admins.
func CanDelete(role league.Role) bool {
	return role == league.RoleAdmin
}

// CanManageSports is true only for admins.
func CanManageSports(role league.Role) bool {
	return role == league.RoleAdmin
}

// CanCreateTournament is true for admins and managers.
func CanCreateTournament(role league.Role) bool {
	switch role {
	case league.RoleAdmin, league.RoleManager:
		return true
	}
	return false
}

// CanViewAllTournaments is true only for admins.
func CanViewAllTournaments(role league.Role) bool {
	return role == league.RoleAdmin
}

// IsOwner reports whether userID created the tournament.
func IsOwner(t league.Tournament, userID string) bool {
	return userID != "" && t.CreatedBy == userID
}

// CanModifyTournament allows admins, and managers who own the tournament.
func CanModifyTournament(role league.Role, t league.Tournament, userID string) bool {
	return role == league.RoleAdmin || (CanModify(role) && IsOwner(t, userID))
}

// Require turns a refused predicate into an error naming the action.
func Require(allowed bool, action string) error {
	if allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrPermissionDenied, action)
}
