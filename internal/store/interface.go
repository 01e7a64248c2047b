package store

import (
	"context"
	"time"

	"github.com/mauv0809/sports-manager/internal/league"
)

// Store is the persistent store for sports, teams, matches, tournaments and users.
// Every method is atomic on its own; InTx groups several into one transaction.
type Store interface {
	// InTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on a store that is already transactional joins it.
	InTx(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error

	CreateSport(ctx context.Context, sport *league.Sport) error
	GetSport(ctx context.Context, id string) (league.Sport, error)
	ListSports(ctx context.Context) ([]league.Sport, error)
	UpdateSport(ctx context.Context, sport league.Sport) error
	// DeleteSport removes the sport with its matches, tournaments and teams.
	DeleteSport(ctx context.Context, id string) error

	CreateTeam(ctx context.Context, team *league.Team) error
	GetTeam(ctx context.Context, id string) (league.Team, error)
	ListTeamsBySport(ctx context.Context, sportID string) ([]league.Team, error)
	UpdateTeamDetails(ctx context.Context, team league.Team) error
	SaveTeamRecord(ctx context.Context, teamID string, record league.Record) error
	// DeleteTeam removes the team, its roster entries and any tournament win.
	// The team must no longer be referenced by matches.
	DeleteTeam(ctx context.Context, id string) error

	CreateMatch(ctx context.Context, match *league.Match) error
	GetMatch(ctx context.Context, id string) (league.Match, error)
	ListMatchesBySport(ctx context.Context, sportID string) ([]league.Match, error)
	ListMatchesByTeam(ctx context.Context, teamID string) ([]league.Match, error)
	SaveMatch(ctx context.Context, match league.Match) error
	DeleteMatch(ctx context.Context, id string) error

	CreateTournament(ctx context.Context, t *league.Tournament) error
	GetTournament(ctx context.Context, id string) (league.Tournament, error)
	ListTournamentsForUser(ctx context.Context, userID string, isAdmin bool, sportID string) ([]league.Tournament, error)
	UpdateTournament(ctx context.Context, t league.Tournament) error
	DeleteTournament(ctx context.Context, id string) error
	AddTeamToTournament(ctx context.Context, tournamentID, teamID string) error
	RemoveTeamFromTournament(ctx context.Context, tournamentID, teamID string) error
	ListTournamentTeamIDs(ctx context.Context, tournamentID string) ([]string, error)

	CreateUser(ctx context.Context, user *league.User, passwordHash string) error
	GetUser(ctx context.Context, id string) (league.User, error)
	// GetCredentials returns the user and stored password hash for a username.
	GetCredentials(ctx context.Context, username string) (league.User, string, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}
