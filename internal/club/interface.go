package club

import "context"

// ClubStore defines the interface for interacting with the club's records.
type ClubStore interface {
	UpsertProfile(ctx context.Context, profile PlayerProfile) error
	GetProfile(ctx context.Context, id string) (*PlayerProfile, error)
	// ListEligibleProfiles returns active members and admins. An empty
	// category returns every category.
	ListEligibleProfiles(ctx context.Context, category string) ([]PlayerProfile, error)

	UpsertMatch(ctx context.Context, match *MatchRecord) error
	// ListFinishedMatches returns finished challenge and SuperSet matches.
	ListFinishedMatches(ctx context.Context) ([]MatchRecord, error)

	CreateChallenge(ctx context.Context, challenge *ChallengeRecord) error
	GetChallenge(ctx context.Context, id string) (*ChallengeRecord, error)
	UpdateChallengeStatus(ctx context.Context, id string, status ChallengeStatus, updatedAt int64) error
	// CountChallenges counts non-void challenges for a player on one side of
	// the challenge in the given month.
	CountChallenges(ctx context.Context, playerID string, role ChallengeRole, monthRef string) (int, error)
	ListOpenChallenges(ctx context.Context) ([]ChallengeRecord, error)
}
