package ranking

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/sourcegraph/conc"
)

const limitUnavailableReason = "could not verify the monthly challenge limit"

// Service computes rankings from the club store and answers eligibility
// questions against them.
type Service struct {
	store      Store
	cache      *Cache
	categories Categories
	metrics    metrics.Metrics
	now        func() time.Time
}

// NewService wires a ranking service. A nil cache disables caching, empty
// categories fall back to DefaultCategories and a nil clock uses time.Now.
func NewService(store Store, cache *Cache, categories Categories, metrics metrics.Metrics, now func() time.Time) *Service {
	if cache == nil {
		cache = NewCache(0, now)
	}
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      store,
		cache:      cache,
		categories: categories,
		metrics:    metrics,
		now:        now,
	}
}

// Categories returns the configured class order.
func (s *Service) Categories() Categories {
	return s.categories
}

// GetRankingStats returns the ranked players. Unfiltered reads are served
// from the cache unless opts.ForceRefresh is set. A category filter always
// recomputes over that category only. Read failures yield an empty ranking.
func (s *Service) GetRankingStats(ctx context.Context, opts Options) []PlayerStats {
	cacheable := opts.Category == ""
	if cacheable && !opts.ForceRefresh {
		if ranked, ok := s.cache.Get(); ok {
			s.metrics.IncRankingCacheHits()
			log.Debug("Serving ranking from cache", "players", len(ranked))
			return ranked
		}
	}
	s.metrics.IncRankingCacheMisses()

	ranked, ok := s.compute(ctx, opts.Category)
	if cacheable && ok {
		s.cache.Set(ranked)
		s.metrics.SetRankedPlayers(len(ranked))
	}
	return ranked
}

func (s *Service) compute(ctx context.Context, category string) ([]PlayerStats, bool) {
	start := time.Now()

	var (
		profiles    []club.PlayerProfile
		matches     []club.MatchRecord
		profilesErr error
		matchesErr  error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		profiles, profilesErr = s.store.ListEligibleProfiles(ctx, category)
	})
	wg.Go(func() {
		matches, matchesErr = s.store.ListFinishedMatches(ctx)
	})
	wg.Wait()

	if profilesErr != nil || matchesErr != nil {
		log.Error("Failed to load ranking data", "profiles_error", profilesErr, "matches_error", matchesErr, "category", category)
		return []PlayerStats{}, false
	}

	ranked := s.categories.Rank(Aggregate(profiles, matches))

	elapsed := time.Since(start)
	s.metrics.IncRankingComputations()
	s.metrics.ObserveRankingDuration(elapsed.Seconds())
	log.Info("Computed ranking", "players", len(ranked), "matches", len(matches), "category", category, "duration", elapsed)
	return ranked, true
}

// GetRankingByCategory groups the global ranking by class.
func (s *Service) GetRankingByCategory(ctx context.Context, forceRefresh bool) []CategoryGroup {
	return s.categories.Group(s.GetRankingStats(ctx, Options{ForceRefresh: forceRefresh}))
}

// GetPlayer returns a copy of one player's ranked stats.
func (s *Service) GetPlayer(ctx context.Context, id string, forceRefresh bool) (*PlayerStats, bool) {
	p := Find(s.GetRankingStats(ctx, Options{ForceRefresh: forceRefresh}), id)
	if p == nil {
		return nil, false
	}
	player := *p
	return &player, true
}

// CheckMonthlyChallengeLimit reports how many challenges the player sent and
// received this month. When a count cannot be read both flags are false.
func (s *Service) CheckMonthlyChallengeLimit(ctx context.Context, playerID string) MonthlyLimit {
	month := MonthRef(s.now())
	limit := MonthlyLimit{PlayerID: playerID, MonthRef: month}

	var sentErr, receivedErr error
	var wg conc.WaitGroup
	wg.Go(func() {
		limit.SentCount, sentErr = s.store.CountChallenges(ctx, playerID, club.AsChallenger, month)
	})
	wg.Go(func() {
		limit.ReceivedCount, receivedErr = s.store.CountChallenges(ctx, playerID, club.AsChallenged, month)
	})
	wg.Wait()

	if sentErr != nil || receivedErr != nil {
		log.Error("Failed to count monthly challenges", "player", playerID, "month", month, "sent_error", sentErr, "received_error", receivedErr)
		limit.SentCount, limit.ReceivedCount = 0, 0
		limit.Reason = limitUnavailableReason
		return limit
	}

	limit.CanChallengeOthers = limit.SentCount < MonthlyChallengeQuota
	limit.CanBeChallenged = limit.ReceivedCount < MonthlyChallengeQuota
	return limit
}

// CanChallengeWithLimits applies the position rule and then the monthly
// quotas: the challenger's sent count and the target's received count.
func (s *Service) CanChallengeWithLimits(ctx context.Context, challenger, target *PlayerStats) Decision {
	decision := CanChallenge(challenger, target)
	if !decision.Allowed {
		return decision
	}

	month := MonthRef(s.now())
	var sent, received int
	var sentErr, receivedErr error
	var wg conc.WaitGroup
	wg.Go(func() {
		sent, sentErr = s.store.CountChallenges(ctx, challenger.ID, club.AsChallenger, month)
	})
	wg.Go(func() {
		received, receivedErr = s.store.CountChallenges(ctx, target.ID, club.AsChallenged, month)
	})
	wg.Wait()

	switch {
	case sentErr != nil || receivedErr != nil:
		log.Error("Failed to check challenge quotas", "challenger", challenger.ID, "target", target.ID, "sent_error", sentErr, "received_error", receivedErr)
		return Decision{Reason: limitUnavailableReason}
	case sent >= MonthlyChallengeQuota:
		return Decision{Reason: "you have already sent a challenge this month"}
	case received >= MonthlyChallengeQuota:
		return Decision{Reason: target.Name + " has already been challenged this month"}
	}
	return Decision{Allowed: true}
}
