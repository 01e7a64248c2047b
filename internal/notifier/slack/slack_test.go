package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sectionText(t *testing.T, block slackapi.Block) string {
	t.Helper()
	section, ok := block.(*slackapi.SectionBlock)
	require.True(t, ok, "expected a section block, got %T", block)
	return section.Text.Text
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(plainSection("hello"))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendResultNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := n.SendResultNotification(notifier.ResultNotification{
		Sport: league.Sport{Name: "Football"},
		Match: league.Match{Date: "2024-05-01", Team1Score: 1, Team2Score: 0},
		Team1: league.Team{Name: "Alpha"},
		Team2: league.Team{Name: "Bravo"},
	}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendResultNotification")
}

func TestFormatResultNotification(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	n := notifier.ResultNotification{
		Sport: league.Sport{Name: "Football"},
		Match: league.Match{Date: "2024-05-01", Location: "Main Stadium", Team1Score: 1, Team2Score: 3},
		Team1: league.Team{Name: "Alpha"},
		Team2: league.Team{Name: "Bravo"},
	}

	msg := client.formatResultNotification(n)
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Football result")
	assert.Equal(t, "Alpha 1 - 3 Bravo", sectionText(t, msg.Blocks.BlockSet[1]))
	assert.Contains(t, sectionText(t, msg.Blocks.BlockSet[2]), "Bravo win")

	ctxBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, ctxBlock.ContextElements.Elements, 1)
	text, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "2024-05-01 | Main Stadium", text.Text)

	n.Corrected = true
	n.Match.Team1Score = 3
	msg = client.formatResultNotification(n)
	header = msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Contains(t, header.Text.Text, "corrected")
	assert.Contains(t, sectionText(t, msg.Blocks.BlockSet[2]), "Draw")
}

func TestFormatStandings(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	sport := league.Sport{Name: "Football", ScoringUnit: league.UnitGoals}

	msg := client.formatStandings(sport, nil)
	require.Len(t, msg.Blocks.BlockSet, 2)
	assert.Equal(t, "No teams yet.", sectionText(t, msg.Blocks.BlockSet[1]))

	table := league.RankTeams([]league.Team{
		{ID: "a", Name: "Alpha", Record: league.Record{Wins: 2, Points: 6, GoalsFor: 5, GoalsAgainst: 1}},
		{ID: "b", Name: "Bravo", Record: league.Record{Losses: 2, GoalsFor: 1, GoalsAgainst: 5}},
	})
	msg = client.formatStandings(sport, table)
	require.Len(t, msg.Blocks.BlockSet, 3)
	first := sectionText(t, msg.Blocks.BlockSet[1])
	assert.Contains(t, first, "1. 🥇 Alpha")
	assert.Contains(t, first, "6 pts | P 2 W 2 D 0 L 0 | Goals 5:1 (+4)")
	assert.Contains(t, sectionText(t, msg.Blocks.BlockSet[2]), "(-4)")
}

func TestFormatTournamentCompleted(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatTournamentCompleted(league.Tournament{Name: "Spring Cup", PrizeMoney: 250}, league.Team{Name: "Alpha"})
	require.Len(t, msg.Blocks.BlockSet, 3)
	assert.Equal(t, "Congratulations to Alpha!", sectionText(t, msg.Blocks.BlockSet[1]))

	msg = client.formatTournamentCompleted(league.Tournament{Name: "Friendly"}, league.Team{Name: "Alpha"})
	assert.Len(t, msg.Blocks.BlockSet, 2)
}
