// Package tournament applies the ownership, lifecycle and roster rules of
// tournaments on top of the store.
package tournament

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/access"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/store"
)

type Service struct {
	store store.Store
	clock clockwork.Clock
}

func New(store store.Store, clock clockwork.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// List returns every tournament to admins and only their own to everyone else.
// A non-empty sportID restricts the list to that sport, which must exist.
func (s *Service) List(ctx context.Context, sess auth.Session, sportID string) ([]league.Tournament, error) {
	if sportID != "" {
		if _, err := s.store.GetSport(ctx, sportID); err != nil {
			return nil, err
		}
	}
	return s.store.ListTournamentsForUser(ctx, sess.User.ID, access.CanViewAllTournaments(sess.User.Role), sportID)
}

// Stats counts the roster and the matches of the tournament's sport in which
// both teams are rostered.
func (s *Service) Stats(ctx context.Context, sess auth.Session, id string) (league.TournamentStats, error) {
	var stats league.TournamentStats
	err := s.store.InTx(ctx, func(tx store.Store) error {
		t, err := visible(ctx, tx, sess, id)
		if err != nil {
			return err
		}
		rostered, err := tx.ListTournamentTeamIDs(ctx, t.ID)
		if err != nil {
			return err
		}
		matches, err := tx.ListMatchesBySport(ctx, t.SportID)
		if err != nil {
			return err
		}
		stats.Teams = len(rostered)
		for _, m := range matches {
			if !slices.Contains(rostered, m.Team1ID) || !slices.Contains(rostered, m.Team2ID) {
				continue
			}
			stats.Matches++
			if m.IsCompleted() {
				stats.CompletedMatches++
			}
		}
		return nil
	})
	if err != nil {
		return league.TournamentStats{}, err
	}
	return stats, nil
}

// Get returns a tournament the session may see. Tournaments outside the
// session's view are reported as missing.
func (s *Service) Get(ctx context.Context, sess auth.Session, id string) (league.Tournament, error) {
	return visible(ctx, s.store, sess, id)
}

func visible(ctx context.Context, st store.Store, sess auth.Session, id string) (league.Tournament, error) {
	t, err := st.GetTournament(ctx, id)
	if err != nil {
		return league.Tournament{}, err
	}
	if !access.CanViewAllTournaments(sess.User.Role) && !access.IsOwner(t, sess.User.ID) {
		return league.Tournament{}, league.NotFound("tournament", id)
	}
	return t, nil
}

// Create opens a tournament owned by the session's user. New tournaments have
// no winner and start upcoming unless told otherwise.
func (s *Service) Create(ctx context.Context, sess auth.Session, t *league.Tournament) error {
	if err := access.Require(access.CanCreateTournament(sess.User.Role), "create tournament"); err != nil {
		return err
	}
	if t.WinnerTeamID != "" {
		return league.Invalid("a new tournament cannot have a winner")
	}
	if t.Status == "" {
		t.Status = league.TournamentUpcoming
	}
	t.CreatedBy = sess.User.ID
	t.CreatedAt = s.clock.Now().Unix()

	return s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetSport(ctx, t.SportID); err != nil {
			return err
		}
		return tx.CreateTournament(ctx, t)
	})
}

// Update replaces the editable fields of a tournament. Sport, owner and
// creation time never change.
func (s *Service) Update(ctx context.Context, sess auth.Session, next league.Tournament) (league.Tournament, error) {
	var updated league.Tournament
	err := s.store.InTx(ctx, func(tx store.Store) error {
		current, err := visible(ctx, tx, sess, next.ID)
		if err != nil {
			return err
		}
		if err := access.Require(access.CanModifyTournament(sess.User.Role, current, sess.User.ID), "modify tournament"); err != nil {
			return err
		}
		if next.Status == "" {
			next.Status = current.Status
		}
		if !current.Status.CanTransitionTo(next.Status) {
			return league.Invalid("tournament cannot move from %s to %s", current.Status, next.Status)
		}
		if next.WinnerTeamID != "" {
			rostered, err := tx.ListTournamentTeamIDs(ctx, current.ID)
			if err != nil {
				return err
			}
			if !slices.Contains(rostered, next.WinnerTeamID) {
				return league.Invalid("winner must be one of the tournament's teams")
			}
		}

		next.SportID = current.SportID
		next.CreatedBy = current.CreatedBy
		next.CreatedAt = current.CreatedAt
		if err := tx.UpdateTournament(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return league.Tournament{}, err
	}
	if updated.Status == league.TournamentCompleted && updated.WinnerTeamID != "" {
		log.Info("Tournament completed", "tournamentID", updated.ID, "winner", updated.WinnerTeamID)
	}
	return updated, nil
}

// Delete removes a tournament. Admins may delete any; managers only their own.
func (s *Service) Delete(ctx context.Context, sess auth.Session, id string) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		t, err := visible(ctx, tx, sess, id)
		if err != nil {
			return err
		}
		if err := access.Require(access.CanModifyTournament(sess.User.Role, t, sess.User.ID), "delete tournament"); err != nil {
			return err
		}
		return tx.DeleteTournament(ctx, id)
	})
}

// Teams lists the roster.
func (s *Service) Teams(ctx context.Context, sess auth.Session, id string) ([]league.Team, error) {
	if _, err := visible(ctx, s.store, sess, id); err != nil {
		return nil, err
	}
	ids, err := s.store.ListTournamentTeamIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	teams := make([]league.Team, 0, len(ids))
	for _, teamID := range ids {
		team, err := s.store.GetTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// AddTeam enters a team of the tournament's sport. Adding it twice is a no-op.
func (s *Service) AddTeam(ctx context.Context, sess auth.Session, id, teamID string) error {
	return s.editRoster(ctx, sess, id, func(tx store.Store, t league.Tournament) error {
		team, err := tx.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team.SportID != t.SportID {
			return league.Invalid("team %q does not play this tournament's sport", team.Name)
		}
		return tx.AddTeamToTournament(ctx, id, teamID)
	})
}

func (s *Service) RemoveTeam(ctx context.Context, sess auth.Session, id, teamID string) error {
	return s.editRoster(ctx, sess, id, func(tx store.Store, _ league.Tournament) error {
		return tx.RemoveTeamFromTournament(ctx, id, teamID)
	})
}

func (s *Service) editRoster(ctx context.Context, sess auth.Session, id string, fn func(store.Store, league.Tournament) error) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		t, err := visible(ctx, tx, sess, id)
		if err != nil {
			return err
		}
		if err := access.Require(access.CanModifyTournament(sess.User.Role, t, sess.User.ID), "edit tournament roster"); err != nil {
			return err
		}
		if t.Status == league.TournamentCompleted {
			return league.Invalid("the roster of a completed tournament is locked")
		}
		return fn(tx, t)
	})
}
