package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/ledger"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/store"
)

// New creates a new Processor.
func New(store store.Store, metrics metrics.Metrics) *Processor {
	return &Processor{
		store:   store,
		metrics: metrics,
	}
}

// ScheduleMatch creates a fixture between two teams of the match's sport.
func (p *Processor) ScheduleMatch(ctx context.Context, match *league.Match) error {
	if err := match.Validate(); err != nil {
		return err
	}
	return p.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetSport(ctx, match.SportID); err != nil {
			return err
		}
		for _, id := range []string{match.Team1ID, match.Team2ID} {
			team, err := tx.GetTeam(ctx, id)
			if err != nil {
				return err
			}
			if team.SportID != match.SportID {
				return league.Invalid("team %q does not play in this sport", team.Name)
			}
		}
		return tx.CreateMatch(ctx, match)
	})
}

// RescheduleMatch moves a match to another date or location. Teams and scores
// are left alone.
func (p *Processor) RescheduleMatch(ctx context.Context, matchID, date, location string) (league.Match, error) {
	if _, err := league.ParseDate("date", date); err != nil {
		return league.Match{}, err
	}
	var match league.Match
	err := p.store.InTx(ctx, func(tx store.Store) error {
		var err error
		match, err = tx.GetMatch(ctx, matchID)
		if err != nil {
			return err
		}
		match.Date = date
		match.Location = location
		return tx.SaveMatch(ctx, match)
	})
	if err != nil {
		return league.Match{}, err
	}
	log.Info("Match rescheduled", "matchID", matchID, "date", date, "location", location)
	return match, nil
}

// RecordResult completes a match with the given score and updates both teams'
// records. When the match already had a result, that result is reversed
// first. Either everything is written or nothing is.
func (p *Processor) RecordResult(ctx context.Context, matchID string, score1, score2 int) (*Result, error) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(time.Since(start).Seconds())
	}()

	if score1 < 0 || score2 < 0 {
		p.metrics.IncResultsRejected()
		return nil, league.Invalid("scores must not be negative (got %d-%d)", score1, score2)
	}
	outcome1, outcome2 := league.Outcomes(score1, score2)

	var res *Result
	err := p.store.InTx(ctx, func(tx store.Store) error {
		match, err := tx.GetMatch(ctx, matchID)
		if err != nil {
			return err
		}
		lg := ledger.New(tx)

		corrected := false
		if match.IsCompleted() {
			log.Info("Match already has a result, reversing it", "matchID", matchID,
				"previous", fmt.Sprintf("%d-%d", match.Team1Score, match.Team2Score))
			if err := reverseMatch(ctx, lg, match); err != nil {
				return err
			}
			corrected = true
		}

		team1, err := lg.ApplyResult(ctx, match.Team1ID, outcome1, score1, score2)
		if err != nil {
			return err
		}
		team2, err := lg.ApplyResult(ctx, match.Team2ID, outcome2, score2, score1)
		if err != nil {
			return err
		}

		match.Status = league.MatchCompleted
		match.Team1Score, match.Team2Score = score1, score2
		if err := tx.SaveMatch(ctx, match); err != nil {
			return err
		}
		res = &Result{Match: match, Team1: team1, Team2: team2, Corrected: corrected}
		return nil
	})
	if err != nil {
		p.metrics.IncResultsRejected()
		log.Error("Failed to record result", "matchID", matchID, "score", fmt.Sprintf("%d-%d", score1, score2), "error", err)
		return nil, err
	}

	p.metrics.IncResultsRecorded()
	if res.Corrected {
		p.metrics.IncResultCorrections()
	}
	log.Info("Result recorded", "matchID", matchID, "score", fmt.Sprintf("%d-%d", score1, score2),
		"team1", res.Team1.Name, "team2", res.Team2.Name, "corrected", res.Corrected)
	return res, nil
}

// DeleteMatch removes a match. A completed match is taken out of both teams'
// records first.
func (p *Processor) DeleteMatch(ctx context.Context, matchID string) error {
	return p.store.InTx(ctx, func(tx store.Store) error {
		match, err := tx.GetMatch(ctx, matchID)
		if err != nil {
			return err
		}
		if match.IsCompleted() {
			if err := reverseMatch(ctx, ledger.New(tx), match); err != nil {
				return err
			}
		}
		return tx.DeleteMatch(ctx, matchID)
	})
}

// DeleteTeam removes a team with all of its matches. Opponents lose whatever
// they gained from completed matches against it.
func (p *Processor) DeleteTeam(ctx context.Context, teamID string) error {
	return p.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetTeam(ctx, teamID); err != nil {
			return err
		}
		matches, err := tx.ListMatchesByTeam(ctx, teamID)
		if err != nil {
			return err
		}
		lg := ledger.New(tx)
		for _, m := range matches {
			if m.IsCompleted() {
				outcome1, outcome2 := league.Outcomes(m.Team1Score, m.Team2Score)
				if m.Team1ID == teamID {
					_, err = lg.ReverseResult(ctx, m.Team2ID, outcome2, m.Team2Score, m.Team1Score)
				} else {
					_, err = lg.ReverseResult(ctx, m.Team1ID, outcome1, m.Team1Score, m.Team2Score)
				}
				if err != nil {
					return err
				}
			}
			if err := tx.DeleteMatch(ctx, m.ID); err != nil {
				return err
			}
		}
		log.Debug("Removed matches of deleted team", "teamID", teamID, "count", len(matches))
		return tx.DeleteTeam(ctx, teamID)
	})
}

func reverseMatch(ctx context.Context, lg *ledger.Ledger, m league.Match) error {
	outcome1, outcome2 := league.Outcomes(m.Team1Score, m.Team2Score)
	if _, err := lg.ReverseResult(ctx, m.Team1ID, outcome1, m.Team1Score, m.Team2Score); err != nil {
		return err
	}
	_, err := lg.ReverseResult(ctx, m.Team2ID, outcome2, m.Team2Score, m.Team1Score)
	return err
}
