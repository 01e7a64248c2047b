package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/sports-manager/internal/league"
)

func (s *store) CreateSport(ctx context.Context, sport *league.Sport) error {
	if err := sport.Validate(); err != nil {
		return err
	}
	if sport.ID == "" {
		sport.ID = uuid.New().String()
	}
	_, err := s.exec(ctx, "INSERT INTO sports (id, name, scoring_unit) VALUES (?, ?, ?)",
		sport.ID, sport.Name, sport.ScoringUnit)
	if err != nil {
		return conflict(err, "sport %q already exists", sport.Name)
	}
	log.Info("Sport added", "sportID", sport.ID, "name", sport.Name)
	return nil
}

func (s *store) GetSport(ctx context.Context, id string) (league.Sport, error) {
	var sport league.Sport
	err := s.queryRow(ctx, "SELECT id, name, scoring_unit FROM sports WHERE id = ?", id).
		Scan(&sport.ID, &sport.Name, &sport.ScoringUnit)
	if err != nil {
		return league.Sport{}, notFound(err, "sport", id)
	}
	return sport, nil
}

func (s *store) ListSports(ctx context.Context) ([]league.Sport, error) {
	rows, err := s.query(ctx, "SELECT id, name, scoring_unit FROM sports ORDER BY name")
	if err != nil {
		return nil, err
	}
	return collect(rows, func(sc scanner) (league.Sport, error) {
		var sport league.Sport
		err := sc.Scan(&sport.ID, &sport.Name, &sport.ScoringUnit)
		return sport, err
	})
}

func (s *store) UpdateSport(ctx context.Context, sport league.Sport) error {
	if err := sport.Validate(); err != nil {
		return err
	}
	err := s.execOne(ctx, "sport", sport.ID,
		"UPDATE sports SET name = ?, scoring_unit = ? WHERE id = ?",
		sport.Name, sport.ScoringUnit, sport.ID)
	if err != nil {
		return conflict(err, "sport %q already exists", sport.Name)
	}
	log.Info("Sport updated", "sportID", sport.ID, "name", sport.Name)
	return nil
}

// DeleteSport removes rosters, tournaments, matches and teams of the sport
// before the sport itself.
func (s *store) DeleteSport(ctx context.Context, id string) error {
	return s.InTx(ctx, func(tx Store) error {
		ts := tx.(*store)
		if _, err := ts.GetSport(ctx, id); err != nil {
			return err
		}

		steps := []struct {
			what  string
			query string
			args  []any
		}{
			{"roster entries", `DELETE FROM tournament_teams
				WHERE tournament_id IN (SELECT id FROM tournaments WHERE sport_id = ?)
				OR team_id IN (SELECT id FROM teams WHERE sport_id = ?)`, []any{id, id}},
			{"tournaments", "DELETE FROM tournaments WHERE sport_id = ?", []any{id}},
			{"matches", "DELETE FROM matches WHERE sport_id = ?", []any{id}},
			{"teams", "DELETE FROM teams WHERE sport_id = ?", []any{id}},
		}
		for _, step := range steps {
			res, err := ts.exec(ctx, step.query, step.args...)
			if err != nil {
				return fmt.Errorf("failed to delete %s of sport %s: %w", step.what, id, err)
			}
			if n, err := res.RowsAffected(); err == nil && n > 0 {
				log.Debug("Cascaded sport delete", "sportID", id, "what", step.what, "rows", n)
			}
		}
		if err := ts.execOne(ctx, "sport", id, "DELETE FROM sports WHERE id = ?", id); err != nil {
			return err
		}
		log.Info("Sport deleted", "sportID", id)
		return nil
	})
}
