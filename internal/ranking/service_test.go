package ranking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *club.MockStore, *metrics.Mock, *fakeClock) {
	t.Helper()
	store := club.NewMock()
	store.ListEligibleProfilesFunc = func(ctx context.Context, category string) ([]club.PlayerProfile, error) {
		all := []club.PlayerProfile{
			profile("x", "4ª Classe"),
			profile("y", "4ª Classe"),
			profile("z", "5ª Classe"),
		}
		if category == "" {
			return all, nil
		}
		var out []club.PlayerProfile
		for _, p := range all {
			if *p.Category == category {
				out = append(out, p)
			}
		}
		return out, nil
	}
	store.ListFinishedMatchesFunc = func(ctx context.Context) ([]club.MatchRecord, error) {
		return []club.MatchRecord{
			finished("m1", club.MatchTypeChallenge, "x", "y", []int{6, 6}, []int{2, 3}, "x"),
			finished("m2", club.MatchTypeChallenge, "z", "x", []int{6, 6}, []int{4, 4}, "z"),
		}, nil
	}

	clock := newFakeClock()
	m := metrics.NewMock()
	svc := NewService(store, NewCache(DefaultCacheTTL, clock.now), DefaultCategories, m, clock.now)
	return svc, store, m, clock
}

func TestGetRankingStats(t *testing.T) {
	svc, _, m, _ := newTestService(t)

	ranked := svc.GetRankingStats(context.Background(), Options{})
	require.Equal(t, []string{"x", "y", "z"}, ids(ranked))
	assert.Equal(t, 100, ranked[0].TotalPoints)
	assert.Equal(t, 3, ranked[2].GlobalPosition)
	assert.Equal(t, 1, m.RankingComputations())
	assert.Equal(t, 3, m.RankedPlayers())
}

func TestGetRankingStats_Cache(t *testing.T) {
	svc, store, m, clock := newTestService(t)
	ctx := context.Background()

	first := svc.GetRankingStats(ctx, Options{})
	second := svc.GetRankingStats(ctx, Options{})
	assert.Equal(t, 1, store.ListFinishedMatchesCalls, "second read served from cache")
	assert.Same(t, &first[0], &second[0])
	assert.Equal(t, 1, m.CacheHits())
	assert.Equal(t, 1, m.CacheMisses())

	svc.GetRankingStats(ctx, Options{ForceRefresh: true})
	assert.Equal(t, 2, store.ListFinishedMatchesCalls, "force refresh bypasses the cache")

	clock.advance(DefaultCacheTTL)
	svc.GetRankingStats(ctx, Options{})
	assert.Equal(t, 3, store.ListFinishedMatchesCalls, "expired entry recomputes")
}

func TestGetRankingStats_CategoryFilter(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	svc.GetRankingStats(ctx, Options{})
	filtered := svc.GetRankingStats(ctx, Options{Category: "5ª Classe"})

	require.Len(t, filtered, 1)
	assert.Equal(t, "z", filtered[0].ID)
	assert.Equal(t, 1, filtered[0].GlobalPosition, "positions are relative to the filtered set")
	assert.Equal(t, []string{"", "5ª Classe"}, store.ListEligibleProfilesCalls)
	// z's win was against x, who is outside the filter.
	assert.Zero(t, filtered[0].Challenge.Wins)
	assert.Zero(t, filtered[0].TotalPoints)
	assert.Equal(t, 1, filtered[0].Challenge.MatchesPlayed)

	fourth := svc.GetRankingStats(ctx, Options{Category: "4ª Classe"})
	x := Find(fourth, "x")
	require.NotNil(t, x)
	assert.Equal(t, 100, x.TotalPoints)
	assert.Zero(t, x.Challenge.Losses, "the loss to z is not attributed")

	// The filtered read must not replace the cached global ranking.
	global := svc.GetRankingStats(ctx, Options{})
	assert.Len(t, global, 3)
	assert.Equal(t, 3, store.ListFinishedMatchesCalls)
}

func TestGetRankingStats_FetchError(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	store.ListFinishedMatchesFunc = func(ctx context.Context) ([]club.MatchRecord, error) {
		return nil, errors.New("connection reset")
	}
	ctx := context.Background()

	ranked := svc.GetRankingStats(ctx, Options{})
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)

	svc.GetRankingStats(ctx, Options{})
	assert.Equal(t, 2, store.ListFinishedMatchesCalls, "failed computations are not cached")
}

func TestGetRankingByCategory(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	groups := svc.GetRankingByCategory(context.Background(), false)
	require.Len(t, groups, 2)
	assert.Equal(t, "4ª Classe", groups[0].Category)
	assert.Equal(t, []string{"x", "y"}, ids(groups[0].Players))
	assert.Equal(t, "5ª Classe", groups[1].Category)
}

func TestGetPlayer(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	p, ok := svc.GetPlayer(ctx, "z", false)
	require.True(t, ok)
	assert.Equal(t, 3, p.GlobalPosition)

	p.TotalPoints = -1
	again, _ := svc.GetPlayer(ctx, "z", false)
	assert.Equal(t, 100, again.TotalPoints, "callers receive a copy")

	_, ok = svc.GetPlayer(ctx, "missing", false)
	assert.False(t, ok)
}

type countKey struct {
	player string
	role   club.ChallengeRole
}

func stubCounts(store *club.MockStore, counts map[countKey]int, fail error) *[]string {
	var mu sync.Mutex
	months := &[]string{}
	store.CountChallengesFunc = func(ctx context.Context, playerID string, role club.ChallengeRole, monthRef string) (int, error) {
		mu.Lock()
		*months = append(*months, monthRef)
		mu.Unlock()
		if fail != nil {
			return 0, fail
		}
		return counts[countKey{playerID, role}], nil
	}
	return months
}

func TestCheckMonthlyChallengeLimit(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	months := stubCounts(store, map[countKey]int{{"x", club.AsChallenger}: 1}, nil)

	limit := svc.CheckMonthlyChallengeLimit(context.Background(), "x")
	assert.Equal(t, "2024-05", limit.MonthRef)
	assert.Equal(t, 1, limit.SentCount)
	assert.Equal(t, 0, limit.ReceivedCount)
	assert.False(t, limit.CanChallengeOthers)
	assert.True(t, limit.CanBeChallenged)
	assert.Empty(t, limit.Reason)
	assert.Equal(t, []string{"2024-05", "2024-05"}, *months)
}

func TestCheckMonthlyChallengeLimit_FailsClosed(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	stubCounts(store, nil, errors.New("timeout"))

	limit := svc.CheckMonthlyChallengeLimit(context.Background(), "x")
	assert.False(t, limit.CanChallengeOthers)
	assert.False(t, limit.CanBeChallenged)
	assert.NotEmpty(t, limit.Reason)
}

func TestCanChallengeWithLimits(t *testing.T) {
	ctx := context.Background()
	x, y := positioned("x", 1), positioned("y", 2)
	far := positioned("far", 9)

	t.Run("position rule short-circuits", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		stubCounts(store, nil, nil)

		d := svc.CanChallengeWithLimits(ctx, &x, &far)
		assert.False(t, d.Allowed)
		assert.Empty(t, store.CountChallengesCalls)
	})

	t.Run("allowed", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		stubCounts(store, nil, nil)

		d := svc.CanChallengeWithLimits(ctx, &x, &y)
		assert.True(t, d.Allowed)
		require.Len(t, store.CountChallengesCalls, 2)
	})

	t.Run("challenger already sent", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		stubCounts(store, map[countKey]int{{"x", club.AsChallenger}: 1}, nil)

		d := svc.CanChallengeWithLimits(ctx, &x, &y)
		assert.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "already sent")
	})

	t.Run("target already challenged", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		stubCounts(store, map[countKey]int{{"y", club.AsChallenged}: 1}, nil)

		d := svc.CanChallengeWithLimits(ctx, &x, &y)
		assert.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "already been challenged")
	})

	t.Run("lookup failure denies", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)
		stubCounts(store, nil, errors.New("boom"))

		d := svc.CanChallengeWithLimits(ctx, &x, &y)
		assert.False(t, d.Allowed)
		assert.Equal(t, limitUnavailableReason, d.Reason)
	})

	t.Run("month turns over", func(t *testing.T) {
		svc, store, _, clock := newTestService(t)
		months := stubCounts(store, nil, nil)
		clock.t = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

		svc.CanChallengeWithLimits(ctx, &x, &y)
		assert.Equal(t, []string{"2024-06", "2024-06"}, *months)
	})
}
