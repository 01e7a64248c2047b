package store

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/sports-manager/internal/league"
)

const teamColumns = "id, sport_id, name, coach, wins, draws, losses, points, goals_for, goals_against"

func scanTeam(sc scanner) (league.Team, error) {
	var t league.Team
	err := sc.Scan(&t.ID, &t.SportID, &t.Name, &t.Coach,
		&t.Wins, &t.Draws, &t.Losses, &t.Points, &t.GoalsFor, &t.GoalsAgainst)
	return t, err
}

// CreateTeam inserts a team with an empty record, whatever record the caller passed.
func (s *store) CreateTeam(ctx context.Context, team *league.Team) error {
	if err := team.Validate(); err != nil {
		return err
	}
	if _, err := s.GetSport(ctx, team.SportID); err != nil {
		return err
	}
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	team.Record = league.Record{}

	_, err := s.exec(ctx, "INSERT INTO teams (id, sport_id, name, coach) VALUES (?, ?, ?, ?)",
		team.ID, team.SportID, team.Name, team.Coach)
	if err != nil {
		return conflict(err, "team %q already exists in this sport", team.Name)
	}
	log.Info("Team added", "teamID", team.ID, "name", team.Name, "sportID", team.SportID)
	return nil
}

func (s *store) GetTeam(ctx context.Context, id string) (league.Team, error) {
	t, err := scanTeam(s.queryRow(ctx, "SELECT "+teamColumns+" FROM teams WHERE id = ?", id))
	if err != nil {
		return league.Team{}, notFound(err, "team", id)
	}
	return t, nil
}

func (s *store) ListTeamsBySport(ctx context.Context, sportID string) ([]league.Team, error) {
	rows, err := s.query(ctx, `
		SELECT `+teamColumns+`
		FROM teams
		WHERE sport_id = ?
		ORDER BY points DESC, (goals_for - goals_against) DESC, goals_for DESC, name`, sportID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTeam)
}

// UpdateTeamDetails changes the cosmetic fields only. The record is owned by the ledger.
func (s *store) UpdateTeamDetails(ctx context.Context, team league.Team) error {
	if err := team.Validate(); err != nil {
		return err
	}
	err := s.execOne(ctx, "team", team.ID,
		"UPDATE teams SET name = ?, coach = ? WHERE id = ?", team.Name, team.Coach, team.ID)
	if err != nil {
		return conflict(err, "team %q already exists in this sport", team.Name)
	}
	log.Info("Team updated", "teamID", team.ID, "name", team.Name)
	return nil
}

func (s *store) SaveTeamRecord(ctx context.Context, teamID string, r league.Record) error {
	return s.execOne(ctx, "team", teamID, `
		UPDATE teams SET
			wins = ?, draws = ?, losses = ?, points = ?, goals_for = ?, goals_against = ?
		WHERE id = ?`,
		r.Wins, r.Draws, r.Losses, r.Points, r.GoalsFor, r.GoalsAgainst, teamID)
}

func (s *store) DeleteTeam(ctx context.Context, id string) error {
	return s.InTx(ctx, func(tx Store) error {
		ts := tx.(*store)
		if _, err := ts.exec(ctx, "DELETE FROM tournament_teams WHERE team_id = ?", id); err != nil {
			return err
		}
		if _, err := ts.exec(ctx, "UPDATE tournaments SET winner_team_id = NULL WHERE winner_team_id = ?", id); err != nil {
			return err
		}
		if err := ts.execOne(ctx, "team", id, "DELETE FROM teams WHERE id = ?", id); err != nil {
			return err
		}
		log.Info("Team deleted", "teamID", id)
		return nil
	})
}
