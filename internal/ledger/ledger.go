// Package ledger owns every team's cumulative record and ranks the standings
// of a sport. It is the only writer of team records.
package ledger

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/league"
)

// Store is the persistence the ledger needs. store.Store satisfies it, as does
// a transaction-bound store.
type Store interface {
	GetSport(ctx context.Context, id string) (league.Sport, error)
	GetTeam(ctx context.Context, id string) (league.Team, error)
	ListTeamsBySport(ctx context.Context, sportID string) ([]league.Team, error)
	SaveTeamRecord(ctx context.Context, teamID string, record league.Record) error
}

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// ApplyResult adds one result to the team's record and persists it.
func (l *Ledger) ApplyResult(ctx context.Context, teamID string, outcome league.Outcome, goalsFor, goalsAgainst int) (league.Team, error) {
	return l.update(ctx, teamID, "apply", func(r league.Record) (league.Record, error) {
		return r.Apply(outcome, goalsFor, goalsAgainst)
	})
}

// ReverseResult removes a previously applied result from the team's record.
func (l *Ledger) ReverseResult(ctx context.Context, teamID string, outcome league.Outcome, goalsFor, goalsAgainst int) (league.Team, error) {
	return l.update(ctx, teamID, "reverse", func(r league.Record) (league.Record, error) {
		return r.Reverse(outcome, goalsFor, goalsAgainst)
	})
}

func (l *Ledger) update(ctx context.Context, teamID, op string, fn func(league.Record) (league.Record, error)) (league.Team, error) {
	team, err := l.store.GetTeam(ctx, teamID)
	if err != nil {
		return league.Team{}, err
	}
	record, err := fn(team.Record)
	if err != nil {
		return league.Team{}, fmt.Errorf("failed to %s result for team %s: %w", op, teamID, err)
	}
	if err := l.store.SaveTeamRecord(ctx, teamID, record); err != nil {
		return league.Team{}, fmt.Errorf("failed to save record for team %s: %w", teamID, err)
	}
	team.Record = record
	log.Debug("Ledger updated", "op", op, "teamID", teamID, "points", record.Points, "played", team.Played())
	return team, nil
}

// Standings ranks the teams of a sport.
func (l *Ledger) Standings(ctx context.Context, sportID string) ([]league.Standing, error) {
	if _, err := l.store.GetSport(ctx, sportID); err != nil {
		return nil, err
	}
	teams, err := l.store.ListTeamsBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for sport %s: %w", sportID, err)
	}
	return league.RankTeams(teams), nil
}
