package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/config"
	"github.com/mauv0809/sports-manager/internal/health"
	"github.com/mauv0809/sports-manager/internal/ledger"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/notifier"
	"github.com/mauv0809/sports-manager/internal/processor"
	"github.com/mauv0809/sports-manager/internal/pubsub"
	"github.com/mauv0809/sports-manager/internal/store"
	"github.com/mauv0809/sports-manager/internal/tournament"
	"github.com/rs/cors"
)

func NewServer(cfg config.Config, st store.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, clock clockwork.Clock, notifier notifier.Notifier, pubsub pubsub.PubSubClient, checker *health.Checker) *Server {
	server := &Server{
		Store:          st,
		Ledger:         ledger.New(st),
		Processor:      processor.New(st, metricsSvc),
		Tournaments:    tournament.New(st, clock),
		Verifier:       auth.NewVerifier(st, clock),
		Tokens:         auth.NewTokenIssuer(cfg.Session.Secret, cfg.Session.TTL, clock),
		Health:         checker,
		Notifier:       notifier,
		PubSub:         pubsub,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Clock:          clock,
		Cfg:            cfg,
		Router:         mux.NewRouter(),
	}

	server.routes()
	server.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Routes below "authed" additionally require a valid session token.
	public := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware) }
	authed := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware, s.authMiddleware) }

	r := s.Router
	r.Handle("/metrics", s.MetricsHandler).Methods(http.MethodGet)
	r.Handle("/health", public(s.HealthCheckHandler())).Methods(http.MethodGet)

	r.Handle("/auth/login", public(s.LoginHandler())).Methods(http.MethodPost)
	r.Handle("/auth/register", public(s.RegisterHandler())).Methods(http.MethodPost)
	r.Handle("/auth/me", authed(s.MeHandler())).Methods(http.MethodGet)

	r.Handle("/sports", authed(s.ListSportsHandler())).Methods(http.MethodGet)
	r.Handle("/sports", authed(s.CreateSportHandler())).Methods(http.MethodPost)
	r.Handle("/sports/{id}", authed(s.UpdateSportHandler())).Methods(http.MethodPut)
	r.Handle("/sports/{id}", authed(s.DeleteSportHandler())).Methods(http.MethodDelete)
	r.Handle("/sports/{id}/standings", authed(s.StandingsHandler())).Methods(http.MethodGet)
	r.Handle("/sports/{id}/standings/notify", authed(s.PostStandingsHandler())).Methods(http.MethodPost)

	r.Handle("/sports/{id}/teams", authed(s.ListTeamsHandler())).Methods(http.MethodGet)
	r.Handle("/sports/{id}/teams", authed(s.CreateTeamHandler())).Methods(http.MethodPost)
	r.Handle("/teams/{id}", authed(s.UpdateTeamHandler())).Methods(http.MethodPut)
	r.Handle("/teams/{id}", authed(s.DeleteTeamHandler())).Methods(http.MethodDelete)

	r.Handle("/sports/{id}/matches", authed(s.ListMatchesHandler())).Methods(http.MethodGet)
	r.Handle("/sports/{id}/matches", authed(s.ScheduleMatchHandler())).Methods(http.MethodPost)
	r.Handle("/matches/{id}", authed(s.RescheduleMatchHandler())).Methods(http.MethodPut)
	r.Handle("/matches/{id}", authed(s.DeleteMatchHandler())).Methods(http.MethodDelete)
	r.Handle("/matches/{id}/result", authed(s.RecordResultHandler())).Methods(http.MethodPost)

	r.Handle("/tournaments", authed(s.ListTournamentsHandler())).Methods(http.MethodGet)
	r.Handle("/tournaments", authed(s.CreateTournamentHandler())).Methods(http.MethodPost)
	r.Handle("/tournaments/{id}", authed(s.GetTournamentHandler())).Methods(http.MethodGet)
	r.Handle("/tournaments/{id}", authed(s.UpdateTournamentHandler())).Methods(http.MethodPut)
	r.Handle("/tournaments/{id}", authed(s.DeleteTournamentHandler())).Methods(http.MethodDelete)
	r.Handle("/tournaments/{id}/stats", authed(s.TournamentStatsHandler())).Methods(http.MethodGet)
	r.Handle("/tournaments/{id}/teams", authed(s.ListTournamentTeamsHandler())).Methods(http.MethodGet)
	r.Handle("/tournaments/{id}/teams/{teamID}", authed(s.AddTournamentTeamHandler())).Methods(http.MethodPost)
	r.Handle("/tournaments/{id}/teams/{teamID}", authed(s.RemoveTournamentTeamHandler())).Methods(http.MethodDelete)

	r.Handle("/pubsub/result-recorded", public(s.ResultRecordedPushHandler())).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
