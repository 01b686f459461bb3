package notifier

import (
	"context"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For new challenges
	SendChallengeCreated(ctx context.Context, challenger, target *ranking.PlayerStats, dryRun bool) error
	// For the ranking board
	SendRanking(ctx context.Context, groups []ranking.CategoryGroup, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingResponse(groups []ranking.CategoryGroup) (any, error)
	FormatPlayerStatsResponse(stats *ranking.PlayerStats, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
