package ranking

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
)

// decidingSet is the index of the super tiebreak set.
const decidingSet = MaxSets - 1

// Aggregate builds one PlayerStats per profile by replaying the finished
// challenge and SuperSet matches on top of the legacy counters. The result
// keeps the profile order and has no positions assigned.
func Aggregate(profiles []club.PlayerProfile, matches []club.MatchRecord) []PlayerStats {
	stats := make([]PlayerStats, len(profiles))
	index := make(map[string]*PlayerStats, len(profiles))
	for i, p := range profiles {
		stats[i] = newPlayerStats(p)
		index[p.ID] = &stats[i]
	}

	for i := range matches {
		replayMatch(index, &matches[i])
	}

	for i := range stats {
		stats[i].computeTotals()
	}
	return stats
}

func replayMatch(index map[string]*PlayerStats, m *club.MatchRecord) {
	if m.Status != club.MatchStatusFinished {
		return
	}

	var award int
	var blockOf func(*PlayerStats) *StatBlock
	switch {
	case m.Type.IsChallenge():
		award = ChallengeWinPoints
		blockOf = func(p *PlayerStats) *StatBlock { return &p.Challenge }
	case m.Type == club.MatchTypeSuperSet:
		award = SuperSetWinPoints
		blockOf = func(p *PlayerStats) *StatBlock { return &p.SuperSet }
	default:
		return
	}

	var a, b *StatBlock
	if p, ok := index[m.PlayerAID]; ok {
		a = blockOf(p)
	}
	if p, ok := index[m.PlayerBID]; ok {
		b = blockOf(p)
	}
	if a == nil || b == nil {
		log.Warn("Match references a player outside the ranked profiles", "matchID", m.ID, "playerA", m.PlayerAID, "playerB", m.PlayerBID)
	}
	if a == nil && b == nil {
		return
	}

	sets := min(len(m.ScoreA), len(m.ScoreB), MaxSets)
	tiebreak := sets > decidingSet
	for set := 0; set < sets; set++ {
		ga, gb := m.ScoreA[set], m.ScoreB[set]
		if isTiebreakSet(ga, gb) {
			tiebreak = true
		}
		if a != nil {
			applySet(a, set, ga, gb)
		}
		if b != nil {
			applySet(b, set, gb, ga)
		}
	}

	for _, blk := range []*StatBlock{a, b} {
		if blk == nil {
			continue
		}
		blk.MatchesPlayed++
		if tiebreak {
			blk.MatchesWithTiebreak++
		}
	}

	// Without both sides the result is not attributed to either.
	if a == nil || b == nil {
		return
	}

	switch m.WinnerID {
	case m.PlayerAID:
		settle(a, b, award)
	case m.PlayerBID:
		settle(b, a, award)
	default:
		log.Warn("Match winner is neither player; no result attributed", "matchID", m.ID, "winnerID", m.WinnerID)
	}
}

// applySet credits one side with a set, seen from that side.
func applySet(blk *StatBlock, set, own, opp int) {
	blk.GamesWon += own
	blk.GamesLost += opp

	switch {
	case own > opp:
		blk.SetsWon++
	case own < opp:
		blk.SetsLost++
	}

	// The deciding set is a super tiebreak whatever the score.
	if set == decidingSet {
		switch {
		case own > opp:
			blk.TiebreaksWon++
		case own < opp:
			blk.TiebreaksLost++
		}
		return
	}

	switch {
	case own == 7 && opp == 6:
		blk.TiebreaksWon++
	case own == 6 && opp == 7:
		blk.TiebreaksLost++
	}
}

func isTiebreakSet(a, b int) bool {
	return (a == 7 && b == 6) || (a == 6 && b == 7)
}

// settle records the result. Losers receive no points.
func settle(winner, loser *StatBlock, award int) {
	winner.Wins++
	winner.Points += award
	loser.Losses++
}
