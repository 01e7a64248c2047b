package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/sports-manager/internal/access"
	"github.com/mauv0809/sports-manager/internal/league"
)

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, err := s.Store.GetSport(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		teams, err := s.Store.ListTeamsBySport(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) CreateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanModify(session(r).User.Role), "create team"); err != nil {
			writeError(w, err)
			return
		}
		var req teamRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		team := league.Team{SportID: mux.Vars(r)["id"], Name: req.Name, Coach: req.Coach}
		if err := s.Store.CreateTeam(r.Context(), &team); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, team)
	}
}

func (s *Server) UpdateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanModify(session(r).User.Role), "edit team"); err != nil {
			writeError(w, err)
			return
		}
		var req teamRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		team, err := s.Store.GetTeam(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		team.Name = req.Name
		team.Coach = req.Coach
		if err := s.Store.UpdateTeamDetails(r.Context(), team); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func (s *Server) DeleteTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := access.Require(access.CanDelete(session(r).User.Role), "delete team"); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Processor.DeleteTeam(r.Context(), mux.Vars(r)["id"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
