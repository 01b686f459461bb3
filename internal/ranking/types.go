package ranking

import "github.com/mauv0809/club-ladder/internal/club"

const (
	// ChallengeWinPoints is awarded to the winner of an ordinary challenge.
	ChallengeWinPoints = 100
	// SuperSetWinPoints is awarded to the winner of a SuperSet.
	SuperSetWinPoints = 10

	// ChallengeWindow is the largest global position distance a challenge may span.
	ChallengeWindow = 3
	// CrossClassChallengeLimit belonged to the earlier class-boundary rule and
	// is not used by CanChallenge.
	CrossClassChallengeLimit = 1

	// MonthlyChallengeQuota applies separately to sent and received challenges.
	MonthlyChallengeQuota = 1

	// MaxSets is the most sets a match can have; the last one is a super tiebreak.
	MaxSets = 3
)

// StatBlock holds the counters of one statistic source.
type StatBlock struct {
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

func (b *StatBlock) add(o StatBlock) {
	b.Wins += o.Wins
	b.Losses += o.Losses
	b.SetsWon += o.SetsWon
	b.SetsLost += o.SetsLost
	b.GamesWon += o.GamesWon
	b.GamesLost += o.GamesLost
	b.TiebreaksWon += o.TiebreaksWon
	b.TiebreaksLost += o.TiebreaksLost
	b.MatchesPlayed += o.MatchesPlayed
	b.MatchesWithTiebreak += o.MatchesWithTiebreak
	b.Points += o.Points
}

// PlayerStats is the combined, ranked view of a player. It is derived on
// every aggregation and never persisted.
type PlayerStats struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  *string `json:"category"`
	AvatarURL *string `json:"avatar_url"`

	Legacy    StatBlock `json:"legacy"`
	Challenge StatBlock `json:"challenge"`
	SuperSet  StatBlock `json:"superset"`

	// Totals sum the legacy, challenge and SuperSet blocks.
	Totals StatBlock `json:"totals"`

	LegacyPoints    int `json:"legacy_points"`
	ChallengePoints int `json:"challenge_points"`
	SuperSetPoints  int `json:"superset_points"`
	TotalPoints     int `json:"total_points"`

	// Positions are 1-based; zero means not assigned.
	CategoryPosition int `json:"category_position"`
	GlobalPosition   int `json:"global_position"`
}

func newPlayerStats(p club.PlayerProfile) PlayerStats {
	return PlayerStats{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		AvatarURL: p.AvatarURL,
		Legacy:    StatBlock(p.Legacy),
	}
}

func (s *PlayerStats) computeTotals() {
	s.Totals = StatBlock{}
	s.Totals.add(s.Legacy)
	s.Totals.add(s.Challenge)
	s.Totals.add(s.SuperSet)

	s.LegacyPoints = s.Legacy.Points
	s.ChallengePoints = s.Challenge.Points
	s.SuperSetPoints = s.SuperSet.Points
	s.TotalPoints = s.Totals.Points
}

// CategoryGroup is the ranking of one category in global order.
type CategoryGroup struct {
	Category string        `json:"category"`
	Players  []PlayerStats `json:"players"`
}

// Options controls a ranking read.
type Options struct {
	// Category restricts the ranking to one category and always recomputes.
	Category string
	// ForceRefresh bypasses the cached unfiltered ranking.
	ForceRefresh bool
}

// Decision is the outcome of an eligibility check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// MonthlyLimit reports a player's challenge quota for one calendar month.
type MonthlyLimit struct {
	PlayerID           string `json:"player_id"`
	MonthRef           string `json:"month_ref"`
	SentCount          int    `json:"sent_count"`
	ReceivedCount      int    `json:"received_count"`
	CanChallengeOthers bool   `json:"can_challenge_others"`
	CanBeChallenged    bool   `json:"can_be_challenged"`
	// Reason is set when a count could not be read.
	Reason string `json:"reason,omitempty"`
}
