package store

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/sports-manager/internal/league"
)

const matchColumns = "id, sport_id, team1_id, team2_id, match_date, location, status, team1_score, team2_score"

func scanMatch(sc scanner) (league.Match, error) {
	var m league.Match
	err := sc.Scan(&m.ID, &m.SportID, &m.Team1ID, &m.Team2ID, &m.Date, &m.Location,
		&m.Status, &m.Team1Score, &m.Team2Score)
	return m, err
}

// CreateMatch stores a scheduled fixture. Whether both teams play the sport is
// checked by the caller.
func (s *store) CreateMatch(ctx context.Context, match *league.Match) error {
	if err := match.Validate(); err != nil {
		return err
	}
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	match.Status = league.MatchScheduled
	match.Team1Score, match.Team2Score = 0, 0

	_, err := s.exec(ctx, `
		INSERT INTO matches (id, sport_id, team1_id, team2_id, match_date, location, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		match.ID, match.SportID, match.Team1ID, match.Team2ID, match.Date, match.Location, match.Status)
	if err != nil {
		return err
	}
	log.Info("Match scheduled", "matchID", match.ID, "team1", match.Team1ID, "team2", match.Team2ID, "date", match.Date)
	return nil
}

func (s *store) GetMatch(ctx context.Context, id string) (league.Match, error) {
	m, err := scanMatch(s.queryRow(ctx, "SELECT "+matchColumns+" FROM matches WHERE id = ?", id))
	if err != nil {
		return league.Match{}, notFound(err, "match", id)
	}
	return m, nil
}

func (s *store) ListMatchesBySport(ctx context.Context, sportID string) ([]league.Match, error) {
	rows, err := s.query(ctx, "SELECT "+matchColumns+" FROM matches WHERE sport_id = ? ORDER BY match_date DESC, id", sportID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMatch)
}

func (s *store) ListMatchesByTeam(ctx context.Context, teamID string) ([]league.Match, error) {
	rows, err := s.query(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE team1_id = ? OR team2_id = ?
		ORDER BY match_date DESC, id`, teamID, teamID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMatch)
}

// SaveMatch overwrites the mutable fields of a match: schedule, status and scores.
func (s *store) SaveMatch(ctx context.Context, m league.Match) error {
	return s.execOne(ctx, "match", m.ID, `
		UPDATE matches SET
			match_date = ?, location = ?, status = ?, team1_score = ?, team2_score = ?
		WHERE id = ?`,
		m.Date, m.Location, m.Status, m.Team1Score, m.Team2Score, m.ID)
}

func (s *store) DeleteMatch(ctx context.Context, id string) error {
	if err := s.execOne(ctx, "match", id, "DELETE FROM matches WHERE id = ?", id); err != nil {
		return err
	}
	log.Info("Match deleted", "matchID", id)
	return nil
}
