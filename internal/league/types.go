package league

import "time"

// ScoringUnit labels what a sport counts. It is only used for display.
type ScoringUnit string

const (
	UnitGoals  ScoringUnit = "goals"
	UnitPoints ScoringUnit = "points"
	UnitRuns   ScoringUnit = "runs"
	UnitSets   ScoringUnit = "sets"
)

// Sport owns its teams, matches and tournaments.
type Sport struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	ScoringUnit ScoringUnit `json:"scoring_unit" yaml:"scoring_unit"`
}

// Team belongs to exactly one sport and carries its cumulative record.
type Team struct {
	ID      string `json:"id"`
	SportID string `json:"sport_id"`
	Name    string `json:"name"`
	Coach   string `json:"coach"`
	Record
}

// Played is the number of results counted for the team.
func (t Team) Played() int {
	return t.Wins + t.Draws + t.Losses
}

// GoalDifference is never stored.
func (t Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "Scheduled"
	MatchCompleted MatchStatus = "Completed"
)

// Match is a fixture between two distinct teams of the same sport.
type Match struct {
	ID         string      `json:"id"`
	SportID    string      `json:"sport_id"`
	Team1ID    string      `json:"team1_id"`
	Team2ID    string      `json:"team2_id"`
	Date       string      `json:"date"`
	Location   string      `json:"location"`
	Status     MatchStatus `json:"status"`
	Team1Score int         `json:"team1_score"`
	Team2Score int         `json:"team2_score"`
}

// IsCompleted reports whether a result has been recorded for the match.
func (m Match) IsCompleted() bool {
	return m.Status == MatchCompleted
}

// Standing is one row of a ranked standings table.
type Standing struct {
	Position       int  `json:"position"`
	Team           Team `json:"team"`
	Played         int  `json:"played"`
	GoalDifference int  `json:"goal_difference"`
}

// User is an account. Role is the only input to the access policy.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
