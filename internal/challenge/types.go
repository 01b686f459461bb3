package challenge

import (
	"errors"
	"slices"

	"github.com/mauv0809/club-ladder/internal/club"
)

var (
	ErrPlayerNotFound    = errors.New("player is not in the ranking")
	ErrNotAllowed        = errors.New("challenge not allowed")
	ErrInvalidTransition = errors.New("invalid challenge status transition")
	ErrInvalidRequest    = errors.New("invalid challenge request")
)

// RejectedError carries the eligibility reason of a refused challenge.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return ErrNotAllowed.Error() + ": " + e.Reason
}

func (e *RejectedError) Unwrap() error {
	return ErrNotAllowed
}

// CreateRequest asks for a new challenge between two ranked players.
type CreateRequest struct {
	ChallengerID string `json:"challenger_id" validate:"required"`
	ChallengedID string `json:"challenged_id" validate:"required,nefield=ChallengerID"`
}

// StatusRequest moves a challenge to a new status.
type StatusRequest struct {
	Status club.ChallengeStatus `json:"status" validate:"required,oneof=proposed accepted scheduled finished declined cancelled expired"`
}

// transitions lists the statuses reachable from each open status. Statuses
// missing from the map are terminal.
var transitions = map[club.ChallengeStatus][]club.ChallengeStatus{
	club.ChallengeProposed:  {club.ChallengeAccepted, club.ChallengeDeclined, club.ChallengeCancelled, club.ChallengeExpired},
	club.ChallengeAccepted:  {club.ChallengeScheduled, club.ChallengeCancelled, club.ChallengeExpired},
	club.ChallengeScheduled: {club.ChallengeFinished, club.ChallengeCancelled, club.ChallengeExpired},
}

// CanTransition reports whether a challenge may move from one status to another.
func CanTransition(from, to club.ChallengeStatus) bool {
	return slices.Contains(transitions[from], to)
}
