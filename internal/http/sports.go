package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/sports-manager/internal/access"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/pubsub"
)

func (s *Server) ListSportsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sports, err := s.Store.ListSports(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sports)
	}
}

func (s *Server) CreateSportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanManageSports(session(r).User.Role), "create sport"); err != nil {
			writeError(w, err)
			return
		}
		var req sportRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		sport := league.Sport{Name: req.Name, ScoringUnit: league.ScoringUnit(req.ScoringUnit)}
		if err := s.Store.CreateSport(r.Context(), &sport); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sport)
	}
}

func (s *Server) UpdateSportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanManageSports(session(r).User.Role), "edit sport"); err != nil {
			writeError(w, err)
			return
		}
		var req sportRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		sport := league.Sport{ID: mux.Vars(r)["id"], Name: req.Name, ScoringUnit: league.ScoringUnit(req.ScoringUnit)}
		if err := s.Store.UpdateSport(r.Context(), sport); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sport)
	}
}

func (s *Server) DeleteSportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session(r)
		if err := access.Require(access.CanManageSports(sess.User.Role), "delete sport"); err != nil {
			writeError(w, err)
			return
		}
		id := mux.Vars(r)["id"]
		sport, err := s.Store.GetSport(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.DeleteSport(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		s.publish(r.Context(), isDryRunFromContext(r), pubsub.EventSportDeleted, pubsub.SportDeleted{
			SportID:   sport.ID,
			Name:      sport.Name,
			DeletedBy: sess.User.ID,
			DeletedAt: s.Clock.Now().Unix(),
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.Ledger.Standings(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, table)
	}
}

// PostStandingsHandler sends the current standings of a sport to the notifier.
func (s *Server) PostStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanModify(session(r).User.Role), "post standings"); err != nil {
			writeError(w, err)
			return
		}
		if s.Notifier == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "notifications are not configured"})
			return
		}
		sport, err := s.Store.GetSport(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		table, err := s.Ledger.Standings(r.Context(), sport.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Notifier.SendStandings(sport, table, isDryRunFromContext(r)); err != nil {
			log.FromContext(r.Context()).Error("Failed to send standings", "sportID", sport.ID, "error", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to send standings"})
			return
		}
		writeJSON(w, http.StatusOK, table)
	}
}

// publish sends an event when a Pub/Sub client is configured. Failures are
// logged; the write they describe is already committed.
func (s *Server) publish(ctx context.Context, dryRun bool, topic pubsub.EventType, data any) bool {
	if s.PubSub == nil {
		return false
	}
	if dryRun {
		log.Info("Dry run, not publishing event", "topic", topic)
		return false
	}
	if err := s.PubSub.SendMessage(ctx, topic, data); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
		return false
	}
	return true
}
