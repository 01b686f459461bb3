package ranking

import (
	"context"

	"github.com/mauv0809/club-ladder/internal/club"
)

// Store defines the record reads the ranking needs.
type Store interface {
	ListEligibleProfiles(ctx context.Context, category string) ([]club.PlayerProfile, error)
	ListFinishedMatches(ctx context.Context) ([]club.MatchRecord, error)
	CountChallenges(ctx context.Context, playerID string, role club.ChallengeRole, monthRef string) (int, error)
}

// Engine is the ranking surface used by the challenge flow and the HTTP layer.
type Engine interface {
	GetRankingStats(ctx context.Context, opts Options) []PlayerStats
	GetRankingByCategory(ctx context.Context, forceRefresh bool) []CategoryGroup
	GetPlayer(ctx context.Context, id string, forceRefresh bool) (*PlayerStats, bool)
	CheckMonthlyChallengeLimit(ctx context.Context, playerID string) MonthlyLimit
	CanChallengeWithLimits(ctx context.Context, challenger, target *PlayerStats) Decision
	Categories() Categories
}
