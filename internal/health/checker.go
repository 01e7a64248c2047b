// Package health runs the background connectivity check against the store.
// It only observes; it never writes league data.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/robfig/cron/v3"
)

const pingTimeout = 5 * time.Second

// Pinger is anything that can report whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the last observation of the checker.
type Status struct {
	Up        bool      `json:"up"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

type Checker struct {
	pinger  Pinger
	metrics metrics.Metrics
	clock   clockwork.Clock
	spec    string
	c       *cron.Cron

	mu   sync.RWMutex
	last Status
}

// New creates a checker that pings on the given cron spec, e.g. "@every 1m".
func New(pinger Pinger, metrics metrics.Metrics, clock clockwork.Clock, spec string) (*Checker, error) {
	ch := &Checker{
		pinger:  pinger,
		metrics: metrics,
		clock:   clock,
		spec:    spec,
		c:       cron.New(),
	}
	if _, err := ch.c.AddFunc(spec, func() { ch.Check(context.Background()) }); err != nil {
		return nil, err
	}
	return ch, nil
}

// Start runs one check immediately and then follows the schedule.
func (ch *Checker) Start() {
	log.Info("Starting connectivity checker", "cron", ch.spec)
	ch.Check(context.Background())
	ch.c.Start()
}

// Stop waits for a running check to finish.
func (ch *Checker) Stop() {
	<-ch.c.Stop().Done()
}

// Check pings the store once and records the result.
func (ch *Checker) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Up: true, CheckedAt: ch.clock.Now().UTC()}
	if err := ch.pinger.Ping(ctx); err != nil {
		status.Up = false
		status.Error = err.Error()
	}

	ch.mu.Lock()
	changed := ch.last.CheckedAt.IsZero() || ch.last.Up != status.Up
	ch.last = status
	ch.mu.Unlock()

	ch.metrics.SetStoreUp(status.Up)
	switch {
	case !status.Up:
		log.Error("Database unreachable", "error", status.Error)
	case changed:
		log.Info("Database reachable")
	default:
		log.Debug("Database reachable")
	}
	return status
}

// Last returns the most recent status. CheckedAt is zero before the first check.
func (ch *Checker) Last() Status {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.last
}
