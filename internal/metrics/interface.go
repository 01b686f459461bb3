package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRankingComputations()
	IncRankingCacheHits()
	IncRankingCacheMisses()
	ObserveRankingDuration(duration float64)
	SetRankedPlayers(count int)
	IncChallengesCreated()
	IncChallengesRejected()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
