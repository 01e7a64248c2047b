package league

import (
	"strings"
	"time"
)

// Role is a user's role. Anything other than the three known values is
// treated as having no permissions.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RolePlayer  Role = "player"
)

// ParseRole normalizes s. The result may still be unrecognized; check Valid.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RolePlayer:
		return true
	}
	return false
}

// TournamentType is the competition format.
type TournamentType string

const (
	TypeLeague        TournamentType = "league"
	TypeKnockout      TournamentType = "knockout"
	TypeGroupKnockout TournamentType = "group-knockout"
)

// Valid reports whether t is a known format.
func (t TournamentType) Valid() bool {
	switch t {
	case TypeLeague, TypeKnockout, TypeGroupKnockout:
		return true
	}
	return false
}

// TournamentStatus is the tournament lifecycle state.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

var tournamentTransitions = map[TournamentStatus][]TournamentStatus{
	TournamentUpcoming: {TournamentOngoing, TournamentCancelled},
	TournamentOngoing:  {TournamentCompleted, TournamentCancelled},
}

// Valid reports whether s is a known status.
func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentOngoing, TournamentCompleted, TournamentCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Staying in the same status is always allowed.
func (s TournamentStatus) CanTransitionTo(next TournamentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range tournamentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Tournament belongs to a sport and is owned by the user who created it.
type Tournament struct {
	ID           string           `json:"id"`
	SportID      string           `json:"sport_id"`
	Name         string           `json:"name"`
	Type         TournamentType   `json:"type"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date,omitempty"`
	Status       TournamentStatus `json:"status"`
	WinnerTeamID string           `json:"winner_team_id,omitempty"`
	Description  string           `json:"description,omitempty"`
	PrizeMoney   float64          `json:"prize_money"`
	CreatedBy    string           `json:"created_by"`
	CreatedAt    int64            `json:"created_at"`
}

// TournamentStats counts a tournament's roster and the matches played
// between rostered teams.
type TournamentStats struct {
	Teams            int `json:"teams"`
	Matches          int `json:"matches"`
	CompletedMatches int `json:"completed_matches"`
}

// DateLayout is the layout for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate validates a calendar date.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Invalid("%s must be a date in YYYY-MM-DD form (got %q)", field, value)
	}
	return d, nil
}

// Validate checks the fields that do not depend on stored state.
func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return Invalid("tournament name is required")
	}
	if t.SportID == "" {
		return Invalid("tournament sport is required")
	}
	if !t.Type.Valid() {
		return Invalid("unknown tournament type %q", t.Type)
	}
	if !t.Status.Valid() {
		return Invalid("unknown tournament status %q", t.Status)
	}
	if t.PrizeMoney < 0 {
		return Invalid("prize money must not be negative")
	}
	start, err := ParseDate("start_date", t.StartDate)
	if err != nil {
		return err
	}
	if t.EndDate != "" {
		end, err := ParseDate("end_date", t.EndDate)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return Invalid("end_date %s is before start_date %s", t.EndDate, t.StartDate)
		}
	}
	if t.WinnerTeamID != "" && t.Status != TournamentCompleted {
		return Invalid("a winner can only be set on a completed tournament")
	}
	return nil
}
