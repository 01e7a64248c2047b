package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/sports-manager/internal/league"
)

const tournamentColumns = `id, sport_id, name, tournament_type, start_date, end_date, status,
	winner_team_id, description, prize_money, created_by, created_at`

func scanTournament(sc scanner) (league.Tournament, error) {
	var (
		t       league.Tournament
		endDate sql.NullString
		winner  sql.NullString
	)
	err := sc.Scan(&t.ID, &t.SportID, &t.Name, &t.Type, &t.StartDate, &endDate, &t.Status,
		&winner, &t.Description, &t.PrizeMoney, &t.CreatedBy, &t.CreatedAt)
	t.EndDate = endDate.String
	t.WinnerTeamID = winner.String
	return t, err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *store) CreateTournament(ctx context.Context, t *league.Tournament) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := s.exec(ctx, `
		INSERT INTO tournaments (`+tournamentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SportID, t.Name, t.Type, t.StartDate, nullable(t.EndDate), t.Status,
		nullable(t.WinnerTeamID), t.Description, t.PrizeMoney, t.CreatedBy, t.CreatedAt)
	if err != nil {
		return err
	}
	log.Info("Tournament created", "tournamentID", t.ID, "name", t.Name, "createdBy", t.CreatedBy)
	return nil
}

func (s *store) GetTournament(ctx context.Context, id string) (league.Tournament, error) {
	t, err := scanTournament(s.queryRow(ctx, "SELECT "+tournamentColumns+" FROM tournaments WHERE id = ?", id))
	if err != nil {
		return league.Tournament{}, notFound(err, "tournament", id)
	}
	return t, nil
}

// ListTournamentsForUser returns every tournament for admins and only the
// user's own tournaments for everyone else. A non-empty sportID narrows the
// list to that sport.
func (s *store) ListTournamentsForUser(ctx context.Context, userID string, isAdmin bool, sportID string) ([]league.Tournament, error) {
	var (
		where []string
		args  []any
	)
	if !isAdmin {
		where = append(where, "created_by = ?")
		args = append(args, userID)
	}
	if sportID != "" {
		where = append(where, "sport_id = ?")
		args = append(args, sportID)
	}
	query := "SELECT " + tournamentColumns + " FROM tournaments"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	rows, err := s.query(ctx, query+" ORDER BY start_date DESC, name", args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTournament)
}

func (s *store) UpdateTournament(ctx context.Context, t league.Tournament) error {
	if err := t.Validate(); err != nil {
		return err
	}
	err := s.execOne(ctx, "tournament", t.ID, `
		UPDATE tournaments SET
			name = ?, tournament_type = ?, start_date = ?, end_date = ?, status = ?,
			winner_team_id = ?, description = ?, prize_money = ?
		WHERE id = ?`,
		t.Name, t.Type, t.StartDate, nullable(t.EndDate), t.Status,
		nullable(t.WinnerTeamID), t.Description, t.PrizeMoney, t.ID)
	if err != nil {
		return err
	}
	log.Info("Tournament updated", "tournamentID", t.ID, "status", t.Status)
	return nil
}

func (s *store) DeleteTournament(ctx context.Context, id string) error {
	return s.InTx(ctx, func(tx Store) error {
		ts := tx.(*store)
		if _, err := ts.exec(ctx, "DELETE FROM tournament_teams WHERE tournament_id = ?", id); err != nil {
			return err
		}
		if err := ts.execOne(ctx, "tournament", id, "DELETE FROM tournaments WHERE id = ?", id); err != nil {
			return err
		}
		log.Info("Tournament deleted", "tournamentID", id)
		return nil
	})
}

// AddTeamToTournament is idempotent.
func (s *store) AddTeamToTournament(ctx context.Context, tournamentID, teamID string) error {
	_, err := s.exec(ctx, `
		INSERT INTO tournament_teams (tournament_id, team_id) VALUES (?, ?)
		ON CONFLICT (tournament_id, team_id) DO NOTHING`, tournamentID, teamID)
	return err
}

func (s *store) RemoveTeamFromTournament(ctx context.Context, tournamentID, teamID string) error {
	return s.execOne(ctx, "tournament entry", teamID,
		"DELETE FROM tournament_teams WHERE tournament_id = ? AND team_id = ?", tournamentID, teamID)
}

func (s *store) ListTournamentTeamIDs(ctx context.Context, tournamentID string) ([]string, error) {
	rows, err := s.query(ctx, `
		SELECT tt.team_id
		FROM tournament_teams tt
		JOIN teams t ON t.id = tt.team_id
		WHERE tt.tournament_id = ?
		ORDER BY t.name`, tournamentID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(sc scanner) (string, error) {
		var id string
		err := sc.Scan(&id)
		return id, err
	})
}
