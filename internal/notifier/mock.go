package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendChallengeCreatedFunc func(challenger, target *ranking.PlayerStats) error
	SendRankingFunc          func(groups []ranking.CategoryGroup) error

	// Call records
	SendChallengeCreatedCalls []ChallengeCreatedCall
	SendRankingCalls          [][]ranking.CategoryGroup
	FormatRankingCalls        [][]ranking.CategoryGroup
	FormatPlayerStatsCalls    []string
	FormatPlayerNotFoundCalls []string
}

// ChallengeCreatedCall holds the arguments of a SendChallengeCreated call.
type ChallengeCreatedCall struct {
	Challenger *ranking.PlayerStats
	Target     *ranking.PlayerStats
	DryRun     bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChallengeCreatedCalls = nil
	m.SendRankingCalls = nil
	m.FormatRankingCalls = nil
	m.FormatPlayerStatsCalls = nil
	m.FormatPlayerNotFoundCalls = nil
}

func (m *Mock) SendChallengeCreated(ctx context.Context, challenger, target *ranking.PlayerStats, dryRun bool) error {
	m.mu.Lock()
	m.SendChallengeCreatedCalls = append(m.SendChallengeCreatedCalls, ChallengeCreatedCall{challenger, target, dryRun})
	fn := m.SendChallengeCreatedFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(challenger, target)
	}
	return nil
}

func (m *Mock) SendRanking(ctx context.Context, groups []ranking.CategoryGroup, dryRun bool) error {
	m.mu.Lock()
	m.SendRankingCalls = append(m.SendRankingCalls, groups)
	fn := m.SendRankingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(groups)
	}
	return nil
}

// The format methods return a plain map so handler tests can inspect the body.

func (m *Mock) FormatRankingResponse(groups []ranking.CategoryGroup) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatRankingCalls = append(m.FormatRankingCalls, groups)
	return map[string]any{"type": "ranking", "groups": len(groups)}, nil
}

func (m *Mock) FormatPlayerStatsResponse(stats *ranking.PlayerStats, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerStatsCalls = append(m.FormatPlayerStatsCalls, query)
	return map[string]any{"type": "player_stats", "id": stats.ID}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerNotFoundCalls = append(m.FormatPlayerNotFoundCalls, query)
	return map[string]any{"type": "not_found", "query": query}, nil
}
