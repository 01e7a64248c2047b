package notifier

import "github.com/mauv0809/sports-manager/internal/league"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a result has been committed
	SendResultNotification(n ResultNotification, dryRun bool) error
	// After a result, or on demand via POST /sports/{id}/standings/notify (CLI post-standings)
	SendStandings(sport league.Sport, table []league.Standing, dryRun bool) error
	// When a tournament is completed with a winner
	SendTournamentCompleted(t league.Tournament, winner league.Team, dryRun bool) error
}

// ResultNotification describes a recorded match result.
type ResultNotification struct {
	Sport     league.Sport
	Match     league.Match
	Team1     league.Team
	Team2     league.Team
	Corrected bool
}
