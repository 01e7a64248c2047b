package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/sports-manager/internal/league"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const postTimeout = 10 * time.Second

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(n notifier.ResultNotification, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatResultNotification(n), dryRun)
	return err
}

func (s *Notifier) SendStandings(sport league.Sport, table []league.Standing, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatStandings(sport, table), dryRun)
	return err
}

func (s *Notifier) SendTournamentCompleted(t league.Tournament, winner league.Team, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatTournamentCompleted(t, winner), dryRun)
	return err
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

// formatResultNotification creates the Slack message for a recorded result using Block Kit.
func (s *Notifier) formatResultNotification(n notifier.ResultNotification) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	title := fmt.Sprintf("🏁 %s result 🏁", n.Sport.Name)
	if n.Corrected {
		title = fmt.Sprintf("✏️ %s result corrected", n.Sport.Name)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	score := fmt.Sprintf("%s %d - %d %s", n.Team1.Name, n.Match.Team1Score, n.Match.Team2Score, n.Team2.Name)
	blocks = append(blocks, plainSection(score))

	var summary string
	switch o, _ := league.Outcomes(n.Match.Team1Score, n.Match.Team2Score); o {
	case league.Win:
		summary = fmt.Sprintf("🏆 %s win", n.Team1.Name)
	case league.Loss:
		summary = fmt.Sprintf("🏆 %s win", n.Team2.Name)
	default:
		summary = "🤝 Draw"
	}
	blocks = append(blocks, plainSection(summary))

	details := fmt.Sprintf("%s | %s", n.Match.Date, n.Match.Location)
	if n.Match.Location == "" {
		details = n.Match.Date
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", details, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the Slack message for a standings table.
func (s *Notifier) formatStandings(sport league.Sport, table []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0, len(table)+1)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 %s standings", sport.Name), true, false)))

	if len(table) == 0 {
		blocks = append(blocks, plainSection("No teams yet."))
		return slack.NewBlockMessage(blocks...)
	}

	for _, row := range table {
		var medal string
		switch row.Position {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		text := fmt.Sprintf("%d. %s%s\n> %d pts | P %d W %d D %d L %d | %s %d:%d (%+d)",
			row.Position, medal, row.Team.Name,
			row.Team.Points, row.Played, row.Team.Wins, row.Team.Draws, row.Team.Losses,
			unitLabel(sport.ScoringUnit), row.Team.GoalsFor, row.Team.GoalsAgainst, row.GoalDifference,
		)
		blocks = append(blocks, plainSection(text))
	}
	return slack.NewBlockMessage(blocks...)
}

func unitLabel(u league.ScoringUnit) string {
	switch u {
	case league.UnitGoals:
		return "Goals"
	case league.UnitRuns:
		return "Runs"
	case league.UnitSets:
		return "Sets"
	default:
		return "Points"
	}
}

func (s *Notifier) formatTournamentCompleted(t league.Tournament, winner league.Team) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s is over!", t.Name), true, false)),
		plainSection(fmt.Sprintf("Congratulations to %s!", winner.Name)),
	}
	if t.PrizeMoney > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("Prize money: %.2f", t.PrizeMoney), true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}
