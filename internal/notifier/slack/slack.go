package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/slack-go/slack"
)

const postTimeout = 10 * time.Second

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api        slackClient
	channelID  string
	categories ranking.Categories
	metrics    metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, categories ranking.Categories, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, categories, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, categories ranking.Categories, metrics metrics.Metrics) *Notifier {
	if len(categories) == 0 {
		categories = ranking.DefaultCategories
	}
	return &Notifier{
		api:        api,
		channelID:  channelID,
		categories: categories,
		metrics:    metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, postTimeout)
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

func (s *Notifier) SendChallengeCreated(ctx context.Context, challenger, target *ranking.PlayerStats, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatChallengeCreated(challenger, target), dryRun)
	return err
}

func (s *Notifier) SendRanking(ctx context.Context, groups []ranking.CategoryGroup, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatRanking(groups), dryRun)
	return err
}

// FormatRankingResponse formats the ranking board for a slash command response.
func (s *Notifier) FormatRankingResponse(groups []ranking.CategoryGroup) (any, error) {
	return s.formatRanking(groups), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(stats *ranking.PlayerStats, query string) (any, error) {
	return s.formatPlayerStats(stats, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", text, false, false)
}

func medal(position int) string {
	switch position {
	case 1:
		return "🥇 "
	case 2:
		return "🥈 "
	case 3:
		return "🥉 "
	}
	return ""
}

func (s *Notifier) formatChallengeCreated(challenger, target *ranking.PlayerStats) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText("⚔️ New challenge! ⚔️")),
		slack.NewSectionBlock(markdown(fmt.Sprintf("*%s* (#%d) has challenged *%s* (#%d)",
			challenger.Name, challenger.GlobalPosition,
			target.Name, target.GlobalPosition,
		)), nil, nil),
	}

	classes := s.categories.Label(challenger.Category)
	if other := s.categories.Label(target.Category); other != classes {
		classes += " vs " + other
	}
	blocks = append(blocks, slack.NewContextBlock("", plainText(classes)))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatRanking(groups []ranking.CategoryGroup) slack.Message {
	blocks := []slack.Block{slack.NewHeaderBlock(plainText("🏆 Club Ladder 🏆"))}

	if len(groups) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plainText("No ranked players yet. Go play some challenges!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, group := range groups {
		if i > 0 {
			blocks = append(blocks, slack.NewDividerBlock())
		}
		lines := make([]string, 0, len(group.Players)+1)
		lines = append(lines, fmt.Sprintf("*%s*", group.Category))
		for _, p := range group.Players {
			lines = append(lines, fmt.Sprintf("%d. %s%s | %d pts | %dW %dL",
				p.CategoryPosition,
				medal(p.CategoryPosition),
				p.Name,
				p.TotalPoints,
				p.Totals.Wins,
				p.Totals.Losses,
			))
		}
		blocks = append(blocks, slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerStats(stat *ranking.PlayerStats, query string) slack.Message {
	header := fmt.Sprintf("🏆 Stats for %s 🏆", stat.Name)

	t := stat.Totals
	body := fmt.Sprintf("> *Position*: #%d overall, #%d in %s\n"+
		"> *Points*: %d (challenges %d, SuperSet %d, legacy %d)\n"+
		"> *Matches*: %d won, %d lost\n"+
		"> *Sets*: %d won, %d lost\n"+
		"> *Games*: %d won, %d lost\n"+
		"> *Tiebreaks*: %d won, %d lost",
		stat.GlobalPosition, stat.CategoryPosition, s.categories.Label(stat.Category),
		stat.TotalPoints, stat.ChallengePoints, stat.SuperSetPoints, stat.LegacyPoints,
		t.Wins, t.Losses,
		t.SetsWon, t.SetsLost,
		t.GamesWon, t.GamesLost,
		t.TiebreaksWon, t.TiebreaksLost,
	)

	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plainText(header)),
		slack.NewSectionBlock(markdown(body), nil, nil),
	)
}

func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a ranked player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(markdown(text), nil, nil),
	)
}
