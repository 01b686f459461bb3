package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/ranking"
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

func strPtr(s string) *string { return &s }

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", nil, metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", nil, metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

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
	notifier := NewNotifierWithAPI(api, "C123", nil, metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendChallengeCreated_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", nil, metrics.NewMock())

	challenger := &ranking.PlayerStats{Name: "Ana", GlobalPosition: 4}
	target := &ranking.PlayerStats{Name: "Rui", GlobalPosition: 2}
	require.NoError(t, notifier.SendChallengeCreated(context.Background(), challenger, target, false))
	assert.True(t, postMessageCalled)
}

func TestFormatChallengeCreated(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", nil, metrics.NewMock())
	challenger := &ranking.PlayerStats{Name: "Ana", GlobalPosition: 4, Category: strPtr("5ª Classe")}
	target := &ranking.PlayerStats{Name: "Rui", GlobalPosition: 2, Category: strPtr("4ª Classe")}

	msg := client.formatChallengeCreated(challenger, target)
	require.Len(t, msg.Blocks.BlockSet, 3)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "⚔️ New challenge! ⚔️", header.Text.Text)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Ana* (#4) has challenged *Rui* (#2)", section.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	classes, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "5ª Classe vs 4ª Classe", classes.Text)
}

func TestFormatRanking(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", nil, metrics.NewMock())

	t.Run("groups with medals", func(t *testing.T) {
		groups := []ranking.CategoryGroup{
			{Category: "4ª Classe", Players: []ranking.PlayerStats{
				{Name: "Ana", CategoryPosition: 1, TotalPoints: 300, Totals: ranking.StatBlock{Wins: 3, Losses: 1}},
				{Name: "Rui", CategoryPosition: 2, TotalPoints: 100, Totals: ranking.StatBlock{Wins: 1}},
			}},
			{Category: ranking.UnrankedCategory, Players: []ranking.PlayerStats{
				{Name: "Zé", CategoryPosition: 4, TotalPoints: 0},
			}},
		}

		msg := client.formatRanking(groups)
		require.Len(t, msg.Blocks.BlockSet, 4, "header, group, divider, group")

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "*4ª Classe*\n1. 🥇 Ana | 300 pts | 3W 1L\n2. 🥈 Rui | 100 pts | 1W 0L", first.Text.Text)

		_, ok = msg.Blocks.BlockSet[2].(*slackapi.DividerBlock)
		assert.True(t, ok)

		last, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "*unranked*\n4. Zé | 0 pts | 0W 0L", last.Text.Text)
	})

	t.Run("empty ranking", func(t *testing.T) {
		msg := client.formatRanking(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "No ranked players yet")
	})
}

func TestFormatPlayerStats(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", nil, metrics.NewMock())
	stat := &ranking.PlayerStats{
		Name:             "Ana",
		Category:         strPtr("4ª Classe"),
		GlobalPosition:   2,
		CategoryPosition: 1,
		TotalPoints:      320,
		ChallengePoints:  200,
		SuperSetPoints:   20,
		LegacyPoints:     100,
		Totals:           ranking.StatBlock{Wins: 5, Losses: 2, SetsWon: 10, SetsLost: 5, GamesWon: 70, GamesLost: 50, TiebreaksWon: 1},
	}

	msg := client.formatPlayerStats(stat, "ana")
	require.Len(t, msg.Blocks.BlockSet, 2)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "🏆 Stats for Ana 🏆", header.Text.Text)

	body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, body.Text.Text, "#2 overall, #1 in 4ª Classe")
	assert.Contains(t, body.Text.Text, "320 (challenges 200, SuperSet 20, legacy 100)")
	assert.Contains(t, body.Text.Text, "*Tiebreaks*: 1 won, 0 lost")
}

func TestFormatPlayerNotFound(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", nil, metrics.NewMock())
	msg := client.formatPlayerNotFound("nobody")
	require.Len(t, msg.Blocks.BlockSet, 1)
	section, ok := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "*nobody*")
}
