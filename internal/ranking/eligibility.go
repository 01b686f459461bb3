package ranking

import (
	"fmt"
	"time"
)

// MonthRef formats t as the YYYY-MM key challenges are counted under.
func MonthRef(t time.Time) string {
	return t.Format("2006-01")
}

// CanChallenge applies the position rule: two different ranked players may
// challenge each other when their global positions are at most
// ChallengeWindow apart. The rule is symmetric.
func CanChallenge(challenger, target *PlayerStats) Decision {
	if challenger == nil || target == nil {
		return Decision{Reason: "player is not part of the ranking"}
	}
	if challenger.ID == target.ID {
		return Decision{Reason: "a player cannot challenge themselves"}
	}
	if challenger.GlobalPosition == 0 || target.GlobalPosition == 0 {
		return Decision{Reason: "ranking position not assigned yet"}
	}

	distance := challenger.GlobalPosition - target.GlobalPosition
	if distance < 0 {
		distance = -distance
	}
	if distance > ChallengeWindow {
		return Decision{Reason: fmt.Sprintf("%s is %d positions away; challenges are limited to %d positions", target.Name, distance, ChallengeWindow)}
	}
	return Decision{Allowed: true}
}

// GetEligibleOpponents returns every player the challenger may challenge by
// position alone. Monthly quotas are not considered.
func GetEligibleOpponents(challengerID string, ranked []PlayerStats) []PlayerStats {
	opponents := make([]PlayerStats, 0)
	challenger := Find(ranked, challengerID)
	if challenger == nil {
		return opponents
	}
	for i := range ranked {
		if CanChallenge(challenger, &ranked[i]).Allowed {
			opponents = append(opponents, ranked[i])
		}
	}
	return opponents
}

// Find returns the player with the given id, or nil.
func Find(ranked []PlayerStats, id string) *PlayerStats {
	for i := range ranked {
		if ranked[i].ID == id {
			return &ranked[i]
		}
	}
	return nil
}
