package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/processor"
	"github.com/mauv0809/sports-manager/internal/store"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	Sports []sportFixture       `yaml:"sports"`
	Users  []auth.Registration `yaml:"users"`
}

type sportFixture struct {
	Name        string        `yaml:"name"`
	ScoringUnit string        `yaml:"scoring_unit"`
	Teams       []teamFixture `yaml:"teams"`
	// Rounds of a round-robin to play with random scores. Zero plays none.
	Rounds   int    `yaml:"rounds"`
	MaxScore int    `yaml:"max_score"`
	Location string `yaml:"location"`
}

type teamFixture struct {
	Name  string `yaml:"name"`
	Coach string `yaml:"coach"`
}

type summary struct {
	Sports, Teams, Users, Matches int
}

type seeder struct {
	store     store.Store
	verifier  *auth.Verifier
	processor *processor.Processor
	rand      *rand.Rand
}

func loadFixture(path string) (fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, err
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fixture{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// seed creates whatever in the fixture does not exist yet. Existing sports,
// teams and users are left alone, so the seeder can be re-run.
func (s *seeder) seed(ctx context.Context, f fixture) (summary, error) {
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	var sum summary

	for _, reg := range f.Users {
		_, err := s.verifier.Register(ctx, reg)
		switch {
		case errors.Is(err, league.ErrConflict):
			log.Info("User already exists", "username", reg.Username)
		case err != nil:
			return sum, fmt.Errorf("user %s: %w", reg.Username, err)
		default:
			sum.Users++
		}
	}

	existing, err := s.store.ListSports(ctx)
	if err != nil {
		return sum, err
	}
	byName := map[string]league.Sport{}
	for _, sp := range existing {
		byName[sp.Name] = sp
	}

	for _, sf := range f.Sports {
		sport, ok := byName[sf.Name]
		if !ok {
			sport = league.Sport{Name: sf.Name, ScoringUnit: league.ScoringUnit(sf.ScoringUnit)}
			if err := s.store.CreateSport(ctx, &sport); err != nil {
				return sum, fmt.Errorf("sport %s: %w", sf.Name, err)
			}
			sum.Sports++
		}

		var teams []league.Team
		for _, tf := range sf.Teams {
			team := league.Team{SportID: sport.ID, Name: tf.Name, Coach: tf.Coach}
			err := s.store.CreateTeam(ctx, &team)
			if errors.Is(err, league.ErrConflict) {
				log.Info("Team already exists", "sport", sport.Name, "team", tf.Name)
				continue
			}
			if err != nil {
				return sum, fmt.Errorf("team %s: %w", tf.Name, err)
			}
			teams = append(teams, team)
			sum.Teams++
		}

		n, err := s.play(ctx, sport, teams, sf)
		if err != nil {
			return sum, err
		}
		sum.Matches += n
	}
	return sum, nil
}

// play schedules a round-robin between newly created teams and records a
// random result for every fixture.
func (s *seeder) play(ctx context.Context, sport league.Sport, teams []league.Team, sf sportFixture) (int, error) {
	maxScore := sf.MaxScore
	if maxScore <= 0 {
		maxScore = 5
	}
	day := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	played := 0
	for round := 0; round < sf.Rounds; round++ {
		for i := range teams {
			for j := i + 1; j < len(teams); j++ {
				home, away := teams[i], teams[j]
				if round%2 == 1 {
					home, away = away, home
				}
				match := league.Match{
					SportID:  sport.ID,
					Team1ID:  home.ID,
					Team2ID:  away.ID,
					Date:     day.Format(league.DateLayout),
					Location: sf.Location,
				}
				if err := s.processor.ScheduleMatch(ctx, &match); err != nil {
					return played, fmt.Errorf("schedule %s vs %s: %w", home.Name, away.Name, err)
				}
				if _, err := s.processor.RecordResult(ctx, match.ID, s.rand.Intn(maxScore+1), s.rand.Intn(maxScore+1)); err != nil {
					return played, fmt.Errorf("result %s vs %s: %w", home.Name, away.Name, err)
				}
				played++
				day = day.AddDate(0, 0, 1)
			}
		}
	}
	if played > 0 {
		log.Info("Played seeded fixtures", "sport", sport.Name, "matches", played)
	}
	return played, nil
}
