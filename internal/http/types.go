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
)

// Server is the JSON API. Notifier, PubSub and Health are optional and may be nil.
type Server struct {
	Store          store.Store
	Ledger         *ledger.Ledger
	Processor      *processor.Processor
	Tournaments    *tournament.Service
	Verifier       *auth.Verifier
	Tokens         *auth.TokenIssuer
	Health         *health.Checker
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Clock          clockwork.Clock
	Cfg            config.Config
	Router         *mux.Router

	handler http.Handler
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	Session auth.Session `json:"session"`
}

type sportRequest struct {
	Name        string `json:"name"`
	ScoringUnit string `json:"scoring_unit"`
}

type teamRequest struct {
	Name  string `json:"name"`
	Coach string `json:"coach"`
}

type matchRequest struct {
	Team1ID  string `json:"team1_id"`
	Team2ID  string `json:"team2_id"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

type rescheduleRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

type resultRequest struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}

type tournamentRequest struct {
	SportID      string  `json:"sport_id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status"`
	WinnerTeamID string  `json:"winner_team_id"`
	Description  string  `json:"description"`
	PrizeMoney   float64 `json:"prize_money"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Store  *health.Status `json:"store,omitempty"`
}

// pushEnvelope is the body of a Pub/Sub push delivery.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}
