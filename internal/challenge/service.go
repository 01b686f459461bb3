package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/sourcegraph/conc/iter"
)

// Service runs the challenge lifecycle on top of the ranking.
type Service struct {
	store     Store
	ranking   ranking.Engine
	notifier  notifier.Notifier
	publisher pubsub.PubSubClient
	metrics   metrics.Metrics
	validate  *validator.Validate
	now       func() time.Time
}

// NewService wires the challenge flow. The publisher may be nil, in which
// case no events are published. A nil clock uses time.Now.
func NewService(store Store, engine ranking.Engine, notifier notifier.Notifier, publisher pubsub.PubSubClient, metrics metrics.Metrics, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:     store,
		ranking:   engine,
		notifier:  notifier,
		publisher: publisher,
		metrics:   metrics,
		validate:  validator.New(),
		now:       now,
	}
}

func (s *Service) validateRequest(ctx context.Context, payload any) error {
	if err := s.validate.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Check resolves both players and returns the eligibility decision without
// creating anything.
func (s *Service) Check(ctx context.Context, req CreateRequest) (ranking.Decision, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return ranking.Decision{}, err
	}
	challenger, target, err := s.resolve(ctx, req)
	if err != nil {
		return ranking.Decision{}, err
	}
	return s.ranking.CanChallengeWithLimits(ctx, challenger, target), nil
}

func (s *Service) resolve(ctx context.Context, req CreateRequest) (*ranking.PlayerStats, *ranking.PlayerStats, error) {
	ranked := s.ranking.GetRankingStats(ctx, ranking.Options{})
	challenger := ranking.Find(ranked, req.ChallengerID)
	if challenger == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, req.ChallengerID)
	}
	target := ranking.Find(ranked, req.ChallengedID)
	if target == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, req.ChallengedID)
	}
	return challenger, target, nil
}

// CreateChallenge stores a proposed challenge when the position rule and both
// monthly quotas allow it. In dry run mode the record is stored but no Slack
// message or event is sent.
func (s *Service) CreateChallenge(ctx context.Context, req CreateRequest, dryRun bool) (*club.ChallengeRecord, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	challenger, target, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	decision := s.ranking.CanChallengeWithLimits(ctx, challenger, target)
	if !decision.Allowed {
		s.metrics.IncChallengesRejected()
		log.Info("Challenge rejected", "challenger", challenger.ID, "target", target.ID, "reason", decision.Reason)
		return nil, &RejectedError{Reason: decision.Reason}
	}

	now := s.now()
	record := &club.ChallengeRecord{
		ID:           uuid.NewString(),
		ChallengerID: challenger.ID,
		ChallengedID: target.ID,
		MonthRef:     ranking.MonthRef(now),
		Status:       club.ChallengeProposed,
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}
	if err := s.store.CreateChallenge(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}
	s.metrics.IncChallengesCreated()
	log.Info("Challenge created", "id", record.ID, "challenger", challenger.ID, "target", target.ID, "month", record.MonthRef)

	if err := s.notifier.SendChallengeCreated(ctx, challenger, target, dryRun); err != nil {
		log.Warn("Failed to announce challenge", "id", record.ID, "error", err)
	}
	if s.publisher != nil && !dryRun {
		event := pubsub.ChallengeCreated{
			ChallengeID:  record.ID,
			ChallengerID: record.ChallengerID,
			ChallengedID: record.ChallengedID,
			MonthRef:     record.MonthRef,
			CreatedAt:    record.CreatedAt,
		}
		if err := s.publisher.SendMessage(pubsub.EventChallengeCreated, event); err != nil {
			log.Warn("Failed to publish challenge event", "id", record.ID, "error", err)
		}
	}
	return record, nil
}

// AvailableOpponents returns the players the challenger can challenge right
// now: inside the position window and with their incoming quota free. The
// result is empty once the challenger has used their own monthly quota.
func (s *Service) AvailableOpponents(ctx context.Context, challengerID string) ([]ranking.PlayerStats, error) {
	ranked := s.ranking.GetRankingStats(ctx, ranking.Options{})
	if ranking.Find(ranked, challengerID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, challengerID)
	}

	available := make([]ranking.PlayerStats, 0)
	if own := s.ranking.CheckMonthlyChallengeLimit(ctx, challengerID); !own.CanChallengeOthers {
		log.Debug("Challenger has no quota left", "player", challengerID, "reason", own.Reason)
		return available, nil
	}

	candidates := ranking.GetEligibleOpponents(challengerID, ranked)
	limits := iter.Map(candidates, func(p *ranking.PlayerStats) ranking.MonthlyLimit {
		return s.ranking.CheckMonthlyChallengeLimit(ctx, p.ID)
	})
	for i, limit := range limits {
		if limit.CanBeChallenged {
			available = append(available, candidates[i])
		}
	}
	return available, nil
}

// UpdateStatus moves a challenge along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, req StatusRequest) (*club.ChallengeRecord, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	record, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge %s: %w", id, err)
	}
	if !CanTransition(record.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, record.Status, req.Status)
	}

	updatedAt := s.now().Unix()
	if err := s.store.UpdateChallengeStatus(ctx, id, req.Status, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to update challenge %s: %w", id, err)
	}
	log.Info("Challenge status updated", "id", id, "from", record.Status, "to", req.Status)

	record.Status = req.Status
	record.UpdatedAt = updatedAt
	return record, nil
}

// ExpireStale expires every open challenge created in an earlier month and
// returns how many were expired.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	open, err := s.store.ListOpenChallenges(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open challenges: %w", err)
	}

	now := s.now()
	month := ranking.MonthRef(now)
	expired := 0
	var errs []error
	for _, c := range open {
		// YYYY-MM sorts chronologically as a string.
		if c.MonthRef >= month {
			continue
		}
		if err := s.store.UpdateChallengeStatus(ctx, c.ID, club.ChallengeExpired, now.Unix()); err != nil {
			log.Error("Failed to expire challenge", "id", c.ID, "error", err)
			errs = append(errs, fmt.Errorf("challenge %s: %w", c.ID, err))
			continue
		}
		expired++
	}
	log.Info("Expired stale challenges", "expired", expired, "open", len(open), "month", month)
	return expired, errors.Join(errs...)
}
