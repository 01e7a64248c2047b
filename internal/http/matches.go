package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/sports-manager/internal/access"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/notifier"
	"github.com/mauv0809/sports-manager/internal/processor"
	"github.com/mauv0809/sports-manager/internal/pubsub"
)

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, err := s.Store.GetSport(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		matches, err := s.Store.ListMatchesBySport(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) ScheduleMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanModify(session(r).User.Role), "schedule match"); err != nil {
			writeError(w, err)
			return
		}
		var req matchRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		match := league.Match{
			SportID:  mux.Vars(r)["id"],
			Team1ID:  req.Team1ID,
			Team2ID:  req.Team2ID,
			Date:     req.Date,
			Location: req.Location,
		}
		if err := s.Processor.ScheduleMatch(r.Context(), &match); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) RescheduleMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanModify(session(r).User.Role), "edit match"); err != nil {
			writeError(w, err)
			return
		}
		var req rescheduleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		match, err := s.Processor.RescheduleMatch(r.Context(), mux.Vars(r)["id"], req.Date, req.Location)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanDelete(session(r).User.Role), "delete match"); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Processor.DeleteMatch(r.Context(), mux.Vars(r)["id"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session(r)
		if err := access.Require(access.CanModify(sess.User.Role), "record result"); err != nil {
			writeError(w, err)
			return
		}
		var req resultRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.Team1Score == nil || req.Team2Score == nil {
			writeError(w, league.Invalid("team1_score and team2_score are required"))
			return
		}
		result, err := s.Processor.RecordResult(r.Context(), mux.Vars(r)["id"], *req.Team1Score, *req.Team2Score)
		if err != nil {
			writeError(w, err)
			return
		}
		s.afterResult(r.Context(), isDryRunFromContext(r), sess.User.ID, result)
		writeJSON(w, http.StatusOK, result)
	}
}

// afterResult announces a committed result. With Pub/Sub configured the event
// is published and the push subscriber notifies; otherwise the notifier is
// called directly.
func (s *Server) afterResult(ctx context.Context, dryRun bool, userID string, result *processor.Result) {
	event := pubsub.ResultRecorded{
		MatchID:    result.Match.ID,
		SportID:    result.Match.SportID,
		Team1ID:    result.Match.Team1ID,
		Team2ID:    result.Match.Team2ID,
		Team1Score: result.Match.Team1Score,
		Team2Score: result.Match.Team2Score,
		Corrected:  result.Corrected,
		RecordedBy: userID,
		RecordedAt: s.Clock.Now().Unix(),
	}
	if s.publish(ctx, dryRun, pubsub.EventResultRecorded, event) {
		return
	}
	s.notifyResult(ctx, dryRun, result.Match.SportID, result.Team1, result.Team2, result.Match, result.Corrected)
}

func (s *Server) notifyResult(ctx context.Context, dryRun bool, sportID string, team1, team2 league.Team, match league.Match, corrected bool) {
	if s.Notifier == nil {
		return
	}
	sport, err := s.Store.GetSport(ctx, sportID)
	if err != nil {
		log.Error("Failed to load sport for notification", "sportID", sportID, "error", err)
		return
	}
	n := notifier.ResultNotification{Sport: sport, Match: match, Team1: team1, Team2: team2, Corrected: corrected}
	if err := s.Notifier.SendResultNotification(n, dryRun); err != nil {
		log.Error("Failed to send result notification", "matchID", match.ID, "error", err)
	}
	table, err := s.Ledger.Standings(ctx, sportID)
	if err != nil {
		log.Error("Failed to load standings for notification", "sportID", sportID, "error", err)
		return
	}
	if err := s.Notifier.SendStandings(sport, table, dryRun); err != nil {
		log.Error("Failed to send standings", "sportID", sportID, "error", err)
	}
}
