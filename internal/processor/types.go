package processor

import (
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/store"
)

// Processor owns the lifecycle of matches and keeps the ledger in step with it.
type Processor struct {
	store   store.Store
	metrics metrics.Metrics
}

// Result is the outcome of recording a match result.
type Result struct {
	Match league.Match `json:"match"`
	Team1 league.Team  `json:"team1"`
	Team2 league.Team  `json:"team2"`
	// Corrected is set when an earlier result for the match was reversed first.
	Corrected bool `json:"corrected"`
}
