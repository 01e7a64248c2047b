package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/config"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/notifier"
	"github.com/mauv0809/sports-manager/internal/pubsub"
	"github.com/mauv0809/sports-manager/internal/store"
	"github.com/mauv0809/sports-manager/internal/store/storetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/bcrypt"
)

// unreachableStore fails match lookups with a non-NotFound error.
type unreachableStore struct {
	store.Store
	err error
}

func (u unreachableStore) GetMatch(ctx context.Context, id string) (league.Match, error) {
	return league.Match{}, u.err
}

type testServer struct {
	*Server
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	tokens   map[league.Role]string
	users    map[league.Role]league.User
}

// setupTestServer builds a server on a fresh database with one user per role.
// withPubSub wires the Pub/Sub mock; otherwise notifications go direct.
func setupTestServer(t *testing.T, withPubSub bool) *testServer {
	t.Helper()

	st := storetest.New(t)
	cfg := config.Config{Session: config.SessionConfig{Secret: "test-secret", TTL: time.Hour}}
	reg := prometheus.NewRegistry()
	mockNotifier := notifier.NewMock()
	mockPubSub := pubsub.NewMock()

	var ps pubsub.PubSubClient
	if withPubSub {
		ps = mockPubSub
	}
	server := NewServer(cfg, st, metrics.NewService(reg), metrics.NewMetricsHandler(reg),
		clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)), mockNotifier, ps, nil)

	ts := &testServer{
		Server:   server,
		notifier: mockNotifier,
		pubsub:   mockPubSub,
		tokens:   map[league.Role]string{},
		users:    map[league.Role]league.User{},
	}
	for _, role := range []league.Role{league.RoleAdmin, league.RoleManager, league.RolePlayer} {
		u := storetest.User(t, st, string(role)+"-user", role)
		token, _, err := server.Tokens.Issue(u)
		require.NoError(t, err)
		ts.tokens[role] = token
		ts.users[role] = u
	}
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, role league.Role, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+ts.tokens[role])
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// seed builds a sport with two teams and one scheduled match through the API.
func (ts *testServer) seed(t *testing.T) (league.Sport, []league.Team, league.Match) {
	t.Helper()
	rr := ts.do(t, http.MethodPost, "/sports", league.RoleAdmin, sportRequest{Name: "Football", ScoringUnit: "goals"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	sport := decodeBody[league.Sport](t, rr)

	var teams []league.Team
	for _, name := range []string{"Lions", "Tigers"} {
		rr = ts.do(t, http.MethodPost, "/sports/"+sport.ID+"/teams", league.RoleManager, teamRequest{Name: name})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		teams = append(teams, decodeBody[league.Team](t, rr))
	}

	rr = ts.do(t, http.MethodPost, "/sports/"+sport.ID+"/matches", league.RoleManager,
		matchRequest{Team1ID: teams[0].ID, Team2ID: teams[1].ID, Date: "2024-05-04", Location: "Main Ground"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return sport, teams, decodeBody[league.Match](t, rr)
}

func TestHealthCheckHandler(t *testing.T) {
	ts := setupTestServer(t, false)

	rr := ts.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeBody[healthResponse](t, rr).Status)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t, false)
	_, _, match := ts.seed(t)
	ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleManager, map[string]int{"team1_score": 1, "team2_score": 0})

	rr := ts.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "league_results_recorded_total 1")
}

func TestLoginFlow(t *testing.T) {
	ts := setupTestServer(t, false)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := league.User{Username: "alice", FullName: "Alice", Email: "alice@example.com", Role: league.RoleManager, Active: true}
	require.NoError(t, ts.Store.CreateUser(context.Background(), &u, string(hash)))

	t.Run("wrong password", func(t *testing.T) {
		rr := ts.do(t, http.MethodPost, "/auth/login", "", loginRequest{Username: "alice", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("success and me", func(t *testing.T) {
		rr := ts.do(t, http.MethodPost, "/auth/login", "", loginRequest{Username: "alice", Password: "secret123"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decodeBody[loginResponse](t, rr)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, u.ID, resp.Session.User.ID)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		me := httptest.NewRecorder()
		ts.ServeHTTP(me, req)
		require.Equal(t, http.StatusOK, me.Code)
		sess := decodeBody[auth.Session](t, me)
		assert.Equal(t, "alice", sess.User.Username)
		assert.Equal(t, league.RoleManager, sess.User.Role)
	})
}

func TestAuthRequired(t *testing.T) {
	ts := setupTestServer(t, false)

	rr := ts.do(t, http.MethodGet, "/sports", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/sports", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rr).Error, "token")
}

func TestRegisterHandler(t *testing.T) {
	ts := setupTestServer(t, false)
	reg := map[string]string{"username": "bob", "full_name": "Bob", "email": "bob@example.com", "password": "secret123"}

	rr := ts.do(t, http.MethodPost, "/auth/register", "", reg)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, league.RolePlayer, decodeBody[league.User](t, rr).Role)

	rr = ts.do(t, http.MethodPost, "/auth/register", "", reg)
	assert.Equal(t, http.StatusConflict, rr.Code)

	admin := map[string]string{"username": "root", "full_name": "Root", "email": "root@example.com", "password": "secret123", "role": "admin"}
	rr = ts.do(t, http.MethodPost, "/auth/register", "", admin)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = ts.do(t, http.MethodPost, "/auth/register", league.RoleManager, admin)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = ts.do(t, http.MethodPost, "/auth/register", league.RoleAdmin, admin)
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestSportPermissions(t *testing.T) {
	ts := setupTestServer(t, false)

	rr := ts.do(t, http.MethodPost, "/sports", league.RoleManager, sportRequest{Name: "Cricket", ScoringUnit: "runs"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodPost, "/sports", league.RoleAdmin, sportRequest{Name: "", ScoringUnit: "runs"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPost, "/sports", league.RoleAdmin, sportRequest{Name: "Cricket", ScoringUnit: "runs"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.do(t, http.MethodPost, "/sports", league.RoleAdmin, sportRequest{Name: "Cricket", ScoringUnit: "runs"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.do(t, http.MethodGet, "/sports", league.RolePlayer, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]league.Sport](t, rr), 1)
}

func TestRecordResultHandler(t *testing.T) {
	t.Run("player is forbidden", func(t *testing.T) {
		ts := setupTestServer(t, false)
		_, teams, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RolePlayer, map[string]int{"team1_score": 3, "team2_score": 1})
		assert.Equal(t, http.StatusForbidden, rr.Code)

		team, err := ts.Store.GetTeam(context.Background(), teams[0].ID)
		require.NoError(t, err)
		assert.Zero(t, team.Played())
	})

	t.Run("negative score", func(t *testing.T) {
		ts := setupTestServer(t, false)
		_, _, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleManager, map[string]int{"team1_score": -1, "team2_score": 1})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing score", func(t *testing.T) {
		ts := setupTestServer(t, false)
		_, _, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleManager, map[string]int{"team1_score": 1})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown match", func(t *testing.T) {
		ts := setupTestServer(t, false)

		rr := ts.do(t, http.MethodPost, "/matches/nope/result", league.RoleManager, map[string]int{"team1_score": 1, "team2_score": 0})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("notifies directly without pubsub", func(t *testing.T) {
		ts := setupTestServer(t, false)
		sport, teams, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleManager, map[string]int{"team1_score": 3, "team2_score": 1})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		res := decodeBody[struct {
			Match league.Match `json:"match"`
			Team1 league.Team  `json:"team1"`
			Team2 league.Team  `json:"team2"`
		}](t, rr)
		assert.Equal(t, league.MatchCompleted, res.Match.Status)
		assert.Equal(t, 3, res.Team1.Points)
		assert.Equal(t, 1, res.Team2.Losses)

		sent := ts.notifier.ResultNotifications()
		require.Len(t, sent, 1)
		assert.Equal(t, sport.Name, sent[0].Sport.Name)
		require.Len(t, ts.notifier.SendStandingsCalls, 1)
		assert.Equal(t, teams[0].ID, ts.notifier.SendStandingsCalls[0].Table[0].Team.ID)
	})

	t.Run("publishes with pubsub", func(t *testing.T) {
		ts := setupTestServer(t, true)
		_, _, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleManager, map[string]int{"team1_score": 0, "team2_score": 2})
		require.Equal(t, http.StatusOK, rr.Code)

		sent := ts.pubsub.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, pubsub.EventResultRecorded, sent[0].Topic)
		event := sent[0].Data.(pubsub.ResultRecorded)
		assert.Equal(t, match.ID, event.MatchID)
		assert.Equal(t, 2, event.Team2Score)
		assert.Equal(t, ts.users[league.RoleManager].ID, event.RecordedBy)
		assert.Empty(t, ts.notifier.ResultNotifications(), "the push subscriber notifies, not the request")
	})

	t.Run("falls back when publish fails", func(t *testing.T) {
		ts := setupTestServer(t, true)
		ts.pubsub.SendMessageFunc = func(pubsub.EventType, any) error { return errors.New("unavailable") }
		_, _, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleManager, map[string]int{"team1_score": 1, "team2_score": 1})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, ts.notifier.ResultNotifications(), 1)
	})

	t.Run("dry run skips publishing", func(t *testing.T) {
		ts := setupTestServer(t, true)
		_, _, match := ts.seed(t)

		rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result?dry_run=true", league.RoleManager, map[string]int{"team1_score": 1, "team2_score": 0})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, ts.pubsub.Sent())
		assert.Len(t, ts.notifier.ResultNotifications(), 1)
	})
}

func TestStandingsHandler(t *testing.T) {
	ts := setupTestServer(t, false)
	sport, teams, match := ts.seed(t)

	rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleAdmin, map[string]int{"team1_score": 0, "team2_score": 2})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodGet, "/sports/"+sport.ID+"/standings", league.RolePlayer, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	table := decodeBody[[]league.Standing](t, rr)
	require.Len(t, table, 2)
	assert.Equal(t, teams[1].ID, table[0].Team.ID)
	assert.Equal(t, 1, table[0].Position)
	assert.Equal(t, 2, table[0].GoalDifference)
	assert.Equal(t, teams[0].ID, table[1].Team.ID)

	rr = ts.do(t, http.MethodGet, "/sports/unknown/standings", league.RolePlayer, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostStandingsHandler(t *testing.T) {
	ts := setupTestServer(t, false)
	sport, teams, match := ts.seed(t)
	rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleAdmin, map[string]int{"team1_score": 1, "team2_score": 0})
	require.Equal(t, http.StatusOK, rr.Code)
	ts.notifier.Reset()

	rr = ts.do(t, http.MethodPost, "/sports/"+sport.ID+"/standings/notify", league.RolePlayer, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, ts.notifier.SendStandingsCalls)

	rr = ts.do(t, http.MethodPost, "/sports/"+sport.ID+"/standings/notify", league.RoleManager, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, ts.notifier.SendStandingsCalls, 1)
	sent := ts.notifier.SendStandingsCalls[0]
	assert.Equal(t, sport.ID, sent.Sport.ID)
	assert.Equal(t, teams[0].ID, sent.Table[0].Team.ID)

	rr = ts.do(t, http.MethodPost, "/sports/unknown/standings/notify", league.RoleManager, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	ts.Notifier = nil
	rr = ts.do(t, http.MethodPost, "/sports/"+sport.ID+"/standings/notify", league.RoleManager, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestDeleteHandlers(t *testing.T) {
	ts := setupTestServer(t, true)
	sport, teams, match := ts.seed(t)
	rr := ts.do(t, http.MethodPost, "/matches/"+match.ID+"/result", league.RoleAdmin, map[string]int{"team1_score": 2, "team2_score": 0})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodDelete, "/matches/"+match.ID, league.RoleManager, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodDelete, "/matches/"+match.ID, league.RoleAdmin, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	team, err := ts.Store.GetTeam(context.Background(), teams[0].ID)
	require.NoError(t, err)
	assert.Zero(t, team.Points, "deleting a completed match reverses its result")

	rr = ts.do(t, http.MethodDelete, "/sports/"+sport.ID, league.RoleAdmin, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	var deleted *pubsub.SendMessageCall
	for _, call := range ts.pubsub.Sent() {
		if call.Topic == pubsub.EventSportDeleted {
			deleted = &call
		}
	}
	require.NotNil(t, deleted)
	assert.Equal(t, sport.ID, deleted.Data.(pubsub.SportDeleted).SportID)

	rr = ts.do(t, http.MethodGet, "/sports/"+sport.ID+"/teams", league.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateTeamHandler(t *testing.T) {
	ts := setupTestServer(t, false)
	_, teams, _ := ts.seed(t)

	rr := ts.do(t, http.MethodPut, "/teams/"+teams[0].ID, league.RoleManager, teamRequest{Name: "Tigers"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.do(t, http.MethodPut, "/teams/"+teams[0].ID, league.RoleManager, teamRequest{Name: "Lions FC", Coach: "Ann"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ann", decodeBody[league.Team](t, rr).Coach)

	rr = ts.do(t, http.MethodPut, "/teams/"+teams[0].ID, league.RoleManager, map[string]string{"name": "X", "points": "99"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "records cannot be written through the API")
}

func TestTournamentHandlers(t *testing.T) {
	ts := setupTestServer(t, false)
	sport, teams, _ := ts.seed(t)

	rr := ts.do(t, http.MethodPost, "/tournaments", league.RolePlayer,
		tournamentRequest{SportID: sport.ID, Name: "Cup", Type: "knockout", StartDate: "2024-06-01"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodPost, "/tournaments", league.RoleManager,
		tournamentRequest{SportID: sport.ID, Name: "Cup", Type: "knockout", StartDate: "2024-06-01"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	cup := decodeBody[league.Tournament](t, rr)
	assert.Equal(t, league.TournamentUpcoming, cup.Status)
	assert.Equal(t, ts.users[league.RoleManager].ID, cup.CreatedBy)

	t.Run("visibility", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, "/tournaments/"+cup.ID, league.RolePlayer, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		rr = ts.do(t, http.MethodGet, "/tournaments", league.RolePlayer, nil)
		assert.Empty(t, decodeBody[[]league.Tournament](t, rr))
		rr = ts.do(t, http.MethodGet, "/tournaments", league.RoleAdmin, nil)
		assert.Len(t, decodeBody[[]league.Tournament](t, rr), 1)
	})

	t.Run("roster and completion", func(t *testing.T) {
		for _, team := range teams {
			rr := ts.do(t, http.MethodPost, "/tournaments/"+cup.ID+"/teams/"+team.ID, league.RoleManager, nil)
			require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
		}
		rr := ts.do(t, http.MethodGet, "/tournaments/"+cup.ID+"/teams", league.RoleManager, nil)
		assert.Len(t, decodeBody[[]league.Team](t, rr), 2)

		update := tournamentRequest{Name: "Cup", Type: "knockout", StartDate: "2024-06-01", Status: "ongoing"}
		rr = ts.do(t, http.MethodPut, "/tournaments/"+cup.ID, league.RoleManager, update)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		update.Status = "completed"
		update.EndDate = "2024-06-30"
		update.WinnerTeamID = teams[1].ID
		rr = ts.do(t, http.MethodPut, "/tournaments/"+cup.ID, league.RoleManager, update)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, teams[1].ID, decodeBody[league.Tournament](t, rr).WinnerTeamID)

		require.Len(t, ts.notifier.SendTournamentCompletedCalls, 1)
		assert.Equal(t, "Tigers", ts.notifier.SendTournamentCompletedCalls[0].Winner.Name)

		rr = ts.do(t, http.MethodDelete, "/tournaments/"+cup.ID+"/teams/"+teams[0].ID, league.RoleManager, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "completed rosters are locked")
	})

	t.Run("filter by sport", func(t *testing.T) {
		rr := ts.do(t, http.MethodPost, "/sports", league.RoleAdmin, sportRequest{Name: "Rugby", ScoringUnit: "points"})
		require.Equal(t, http.StatusCreated, rr.Code)
		rugby := decodeBody[league.Sport](t, rr)
		rr = ts.do(t, http.MethodPost, "/tournaments", league.RoleManager,
			tournamentRequest{SportID: rugby.ID, Name: "Sevens", Type: "knockout", StartDate: "2024-07-01"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = ts.do(t, http.MethodGet, "/tournaments?sport_id="+sport.ID, league.RoleManager, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		list := decodeBody[[]league.Tournament](t, rr)
		require.Len(t, list, 1)
		assert.Equal(t, cup.ID, list[0].ID)

		rr = ts.do(t, http.MethodGet, "/tournaments?sport_id="+rugby.ID, league.RolePlayer, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decodeBody[[]league.Tournament](t, rr))

		rr = ts.do(t, http.MethodGet, "/tournaments?sport_id=missing", league.RoleAdmin, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("stats", func(t *testing.T) {
		rr := ts.do(t, http.MethodGet, "/tournaments/"+cup.ID+"/stats", league.RoleManager, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, league.TournamentStats{Teams: 2, Matches: 1}, decodeBody[league.TournamentStats](t, rr))

		rr = ts.do(t, http.MethodGet, "/tournaments/"+cup.ID+"/stats", league.RolePlayer, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := ts.do(t, http.MethodDelete, "/tournaments/"+cup.ID, league.RolePlayer, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		rr = ts.do(t, http.MethodDelete, "/tournaments/"+cup.ID, league.RoleManager, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestResultRecordedPushHandler(t *testing.T) {
	ts := setupTestServer(t, true)
	_, _, match := ts.seed(t)
	_, err := ts.Processor.RecordResult(context.Background(), match.ID, 2, 1)
	require.NoError(t, err)

	push := func(t *testing.T, payload []byte) *httptest.ResponseRecorder {
		t.Helper()
		var env pushEnvelope
		env.Subscription = "projects/test/subscriptions/result-recorded"
		env.Message.Data = base64.StdEncoding.EncodeToString(payload)
		return ts.do(t, http.MethodPost, "/pubsub/result-recorded", "", env)
	}

	t.Run("notifies", func(t *testing.T) {
		payload, err := msgpack.Marshal(pubsub.ResultRecorded{MatchID: match.ID, Team1Score: 2, Team2Score: 1})
		require.NoError(t, err)

		rr := push(t, payload)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		sent := ts.notifier.ResultNotifications()
		require.Len(t, sent, 1)
		assert.Equal(t, 2, sent[0].Match.Team1Score)
		assert.Equal(t, 3, sent[0].Team1.Points)
		assert.Len(t, ts.notifier.SendStandingsCalls, 1)
	})

	t.Run("unknown match is acked", func(t *testing.T) {
		ts.notifier.Reset()
		payload, err := msgpack.Marshal(pubsub.ResultRecorded{MatchID: "gone"})
		require.NoError(t, err)

		rr := push(t, payload)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, ts.notifier.ResultNotifications())
	})

	t.Run("store error is redelivered", func(t *testing.T) {
		ts.notifier.Reset()
		healthy := ts.Store
		ts.Store = unreachableStore{Store: healthy, err: errors.New("connection reset")}
		defer func() { ts.Store = healthy }()
		payload, err := msgpack.Marshal(pubsub.ResultRecorded{MatchID: match.ID, Team1Score: 2, Team2Score: 1})
		require.NoError(t, err)

		rr := push(t, payload)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, "Pub/Sub must not treat the message as delivered")
		assert.Empty(t, ts.notifier.ResultNotifications())
	})

	t.Run("bad envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/pubsub/result-recorded", bytes.NewBufferString("{"))
		rr := httptest.NewRecorder()
		ts.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestParamsMiddleware_DryRun(t *testing.T) {
	var got bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = isDryRunFromContext(r)
	}), paramsMiddleware)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?dry_run=true", nil))
	assert.True(t, got)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, got)
}

func TestParamsMiddleware_VerboseIsRequestScoped(t *testing.T) {
	globalLevel := log.GetLevel()
	var requestLevel log.Level
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLevel = log.FromContext(r.Context()).GetLevel()
		assert.Equal(t, globalLevel, log.GetLevel(), "the package logger must keep its level")
	}), paramsMiddleware)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?verbose=true", nil))
	assert.Equal(t, log.DebugLevel, requestLevel)
	assert.Equal(t, globalLevel, log.GetLevel())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, globalLevel, requestLevel)
}
