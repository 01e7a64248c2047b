package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/sports-manager/internal/metrics"
)

type client struct {
	client   *pubsub.Client
	metrics  metrics.Metrics
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventResultRecorded EventType = "result-recorded"
	EventSportDeleted   EventType = "sport-deleted"
)

// ResultRecorded is published after a match result has been committed.
type ResultRecorded struct {
	MatchID    string `msgpack:"match_id"`
	SportID    string `msgpack:"sport_id"`
	Team1ID    string `msgpack:"team1_id"`
	Team2ID    string `msgpack:"team2_id"`
	Team1Score int    `msgpack:"team1_score"`
	Team2Score int    `msgpack:"team2_score"`
	Corrected  bool   `msgpack:"corrected"`
	RecordedBy string `msgpack:"recorded_by"`
	RecordedAt int64  `msgpack:"recorded_at"`
}

// SportDeleted is published after a sport and everything under it was removed.
type SportDeleted struct {
	SportID   string `msgpack:"sport_id"`
	Name      string `msgpack:"name"`
	DeletedBy string `msgpack:"deleted_by"`
	DeletedAt int64  `msgpack:"deleted_at"`
}
