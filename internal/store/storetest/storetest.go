// Package storetest provides a migrated SQLite store for tests in other packages.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mauv0809/sports-manager/internal/config"
	"github.com/mauv0809/sports-manager/internal/database"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/store"
	"github.com/stretchr/testify/require"
)

// New returns a store backed by a fresh database file that is removed when
// the test ends.
func New(t *testing.T) store.Store {
	t.Helper()

	dbCfg := config.DBConfig{Driver: config.DriverSQLite, Name: filepath.Join(t.TempDir(), "test.db")}
	db, teardown, err := database.InitDB(dbCfg, config.TursoConfig{})
	require.NoError(t, err)
	t.Cleanup(teardown)

	return store.New(db)
}

// Sport creates a sport with the given name.
func Sport(t *testing.T, s store.Store, name string) league.Sport {
	t.Helper()
	sport := league.Sport{Name: name, ScoringUnit: league.UnitGoals}
	require.NoError(t, s.CreateSport(context.Background(), &sport))
	return sport
}

// Teams creates one team per name in the sport.
func Teams(t *testing.T, s store.Store, sportID string, names ...string) []league.Team {
	t.Helper()
	teams := make([]league.Team, 0, len(names))
	for _, name := range names {
		team := league.Team{SportID: sportID, Name: name}
		require.NoError(t, s.CreateTeam(context.Background(), &team))
		teams = append(teams, team)
	}
	return teams
}

// User creates an active user with the given role and a placeholder hash.
func User(t *testing.T, s store.Store, username string, role league.Role) league.User {
	t.Helper()
	u := league.User{Username: username, FullName: username, Email: username + "@example.com", Role: role, Active: true}
	require.NoError(t, s.CreateUser(context.Background(), &u, "hash"))
	return u
}
