package club

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Role is a profile's role in the club.
type Role string

const (
	RoleMember    Role = "member"
	RoleAdmin     Role = "admin"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// Ranked reports whether profiles with this role take part in the ranking.
func (r Role) Ranked() bool {
	return r == RoleMember || r == RoleAdmin
}

// LegacyStats are the cumulative counters carried over from the previous
// championship system. They are never recomputed.
type LegacyStats struct {
	Wins                int `json:"wins"`
	Losses              int `json:"losses"`
	SetsWon             int `json:"sets_won"`
	SetsLost            int `json:"sets_lost"`
	GamesWon            int `json:"games_won"`
	GamesLost           int `json:"games_lost"`
	TiebreaksWon        int `json:"tiebreaks_won"`
	TiebreaksLost       int `json:"tiebreaks_lost"`
	MatchesPlayed       int `json:"matches_played"`
	MatchesWithTiebreak int `json:"matches_with_tiebreak"`
	Points              int `json:"points"`
}

// PlayerProfile represents a club profile.
type PlayerProfile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Category  *string     `json:"category"`
	AvatarURL *string     `json:"avatar_url"`
	Role      Role        `json:"role"`
	Active    bool        `json:"active"`
	Legacy    LegacyStats `json:"legacy"`
}

// MatchType distinguishes ordinary challenges from SuperSet and legacy matches.
type MatchType string

const (
	MatchTypeChallenge        MatchType = "Desafio"
	MatchTypeRankingChallenge MatchType = "Desafio Ranking"
	MatchTypeSuperSet         MatchType = "SuperSet"
	// MatchTypeLegacy matches are already folded into the legacy counters.
	MatchTypeLegacy MatchType = "Legado"
)

// IsChallenge reports whether the match is an ordinary challenge match.
func (t MatchType) IsChallenge() bool {
	return t == MatchTypeChallenge || t == MatchTypeRankingChallenge
}

// MatchStatus is the lifecycle status of a match.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusFinished MatchStatus = "finished"
)

// MatchRecord is a single match between two players. ScoreA and ScoreB hold
// the games won per set by each side.
type MatchRecord struct {
	ID        string      `json:"id" msgpack:"id"`
	PlayerAID string      `json:"player_a_id" msgpack:"player_a_id"`
	PlayerBID string      `json:"player_b_id" msgpack:"player_b_id"`
	ScoreA    []int       `json:"score_a" msgpack:"score_a"`
	ScoreB    []int       `json:"score_b" msgpack:"score_b"`
	WinnerID  string      `json:"winner_id" msgpack:"winner_id"`
	Type      MatchType   `json:"type" msgpack:"type"`
	Status    MatchStatus `json:"status" msgpack:"status"`
	PlayedAt  int64       `json:"played_at" msgpack:"played_at"`
	CreatedAt int64       `json:"created_at" msgpack:"created_at"`
}

// ChallengeStatus is the lifecycle status of a challenge.
type ChallengeStatus string

const (
	ChallengeProposed  ChallengeStatus = "proposed"
	ChallengeAccepted  ChallengeStatus = "accepted"
	ChallengeScheduled ChallengeStatus = "scheduled"
	ChallengeFinished  ChallengeStatus = "finished"
	ChallengeDeclined  ChallengeStatus = "declined"
	ChallengeCancelled ChallengeStatus = "cancelled"
	ChallengeExpired   ChallengeStatus = "expired"
)

// VoidChallengeStatuses do not consume monthly quota.
var VoidChallengeStatuses = []ChallengeStatus{ChallengeCancelled, ChallengeExpired, ChallengeDeclined}

// IsVoid reports whether a challenge in this status no longer counts.
func (s ChallengeStatus) IsVoid() bool {
	for _, v := range VoidChallengeStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ChallengeRole selects which side of a challenge a player is counted on.
type ChallengeRole string

const (
	AsChallenger ChallengeRole = "challenger"
	AsChallenged ChallengeRole = "challenged"
)

// ChallengeRecord is one challenge between two players for a calendar month.
type ChallengeRecord struct {
	ID           string          `json:"id" msgpack:"id"`
	ChallengerID string          `json:"challenger_id" msgpack:"challenger_id"`
	ChallengedID string          `json:"challenged_id" msgpack:"challenged_id"`
	MonthRef     string          `json:"month_ref" msgpack:"month_ref"` // YYYY-MM
	Status       ChallengeStatus `json:"status" msgpack:"status"`
	CreatedAt    int64           `json:"created_at" msgpack:"created_at"`
	UpdatedAt    int64           `json:"updated_at" msgpack:"updated_at"`
}
