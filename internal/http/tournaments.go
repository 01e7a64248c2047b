package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/sports-manager/internal/league"
)

func (req tournamentRequest) tournament(id string) league.Tournament {
	return league.Tournament{
		ID:           id,
		SportID:      req.SportID,
		Name:         req.Name,
		Type:         league.TournamentType(req.Type),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       league.TournamentStatus(req.Status),
		WinnerTeamID: req.WinnerTeamID,
		Description:  req.Description,
		PrizeMoney:   req.PrizeMoney,
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.Tournaments.List(r.Context(), session(r), r.URL.Query().Get("sport_id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tournamentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		t := req.tournament("")
		if err := s.Tournaments.Create(r.Context(), session(r), &t); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Tournaments.Get(r.Context(), session(r), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) UpdateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session(r)
		var req tournamentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		id := mux.Vars(r)["id"]
		before, err := s.Tournaments.Get(r.Context(), sess, id)
		if err != nil {
			writeError(w, err)
			return
		}
		updated, err := s.Tournaments.Update(r.Context(), sess, req.tournament(id))
		if err != nil {
			writeError(w, err)
			return
		}
		if before.Status != league.TournamentCompleted &&
			updated.Status == league.TournamentCompleted && updated.WinnerTeamID != "" {
			s.notifyTournamentCompleted(r, updated)
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) notifyTournamentCompleted(r *http.Request, t league.Tournament) {
	if s.Notifier == nil {
		return
	}
	winner, err := s.Store.GetTeam(r.Context(), t.WinnerTeamID)
	if err != nil {
		log.Error("Failed to load tournament winner", "tournamentID", t.ID, "error", err)
		return
	}
	if err := s.Notifier.SendTournamentCompleted(t, winner, isDryRunFromContext(r)); err != nil {
		log.Error("Failed to send tournament notification", "tournamentID", t.ID, "error", err)
	}
}

func (s *Server) DeleteTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Tournaments.Delete(r.Context(), session(r), mux.Vars(r)["id"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) TournamentStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Tournaments.Stats(r.Context(), session(r), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) ListTournamentTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Tournaments.Teams(r.Context(), session(r), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) AddTournamentTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if err := s.Tournaments.AddTeam(r.Context(), session(r), vars["id"], vars["teamID"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RemoveTournamentTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if err := s.Tournaments.RemoveTeam(r.Context(), session(r), vars["id"], vars["teamID"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
