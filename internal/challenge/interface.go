package challenge

import (
	"context"

	"github.com/mauv0809/club-ladder/internal/club"
)

// Store defines the challenge records the flow reads and writes.
type Store interface {
	CreateChallenge(ctx context.Context, challenge *club.ChallengeRecord) error
	GetChallenge(ctx context.Context, id string) (*club.ChallengeRecord, error)
	UpdateChallengeStatus(ctx context.Context, id string, status club.ChallengeStatus, updatedAt int64) error
	ListOpenChallenges(ctx context.Context) ([]club.ChallengeRecord, error)
}
