package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/pubsub"
)

// ResultRecordedPushHandler is the push subscriber for result-recorded events.
// It sends the result and the refreshed standings to the notifier.
func (s *Server) ResultRecordedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		logger.Debug("Received result-recorded message", "body", string(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			logger.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			logger.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		if s.PubSub == nil {
			http.Error(w, "Pub/Sub is not configured", http.StatusServiceUnavailable)
			return
		}
		var event pubsub.ResultRecorded
		if err := s.PubSub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		match, err := s.Store.GetMatch(ctx, event.MatchID)
		if err != nil {
			pushFailed(w, logger, event.MatchID, err)
			return
		}
		team1, err := s.Store.GetTeam(ctx, match.Team1ID)
		if err != nil {
			pushFailed(w, logger, match.ID, err)
			return
		}
		team2, err := s.Store.GetTeam(ctx, match.Team2ID)
		if err != nil {
			pushFailed(w, logger, match.ID, err)
			return
		}
		s.notifyResult(ctx, isDryRunFromContext(r), match.SportID, team1, team2, match, event.Corrected)
		w.Write([]byte("OK"))
	}
}

// pushFailed acks events whose match or teams were deleted after publishing.
// Any other error is returned as 500 so Pub/Sub redelivers the message.
func pushFailed(w http.ResponseWriter, logger *log.Logger, matchID string, err error) {
	if errors.Is(err, league.ErrNotFound) {
		logger.Warn("Dropping result event", "matchID", matchID, "error", err)
		w.Write([]byte("OK"))
		return
	}
	logger.Error("Failed to load result event, requesting redelivery", "matchID", matchID, "error", err)
	http.Error(w, "Failed to load match", http.StatusInternalServerError)
}
