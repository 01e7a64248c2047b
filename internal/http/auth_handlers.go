package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/access"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/league"
)

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		user, err := s.Verifier.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		token, sess, err := s.Tokens.Issue(*user)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, Session: sess})
	}
}

// RegisterHandler opens an account. Anyone may register a player or manager;
// creating an admin needs an admin session.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg auth.Registration
		if err := decodeJSON(r, &reg); err != nil {
			writeError(w, err)
			return
		}
		if league.ParseRole(reg.Role) == league.RoleAdmin {
			sess, err := s.sessionFromRequest(r)
			if err != nil {
				writeError(w, access.Require(false, "register an admin"))
				return
			}
			if err := access.Require(sess.User.Role == league.RoleAdmin, "register an admin"); err != nil {
				writeError(w, err)
				return
			}
		}
		user, err := s.Verifier.Register(r.Context(), reg)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("User registered", "userID", user.ID, "username", user.Username, "role", user.Role)
		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, session(r))
	}
}
