package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	RankingComputations prometheus.Counter
	RankingCacheHits    prometheus.Counter
	RankingCacheMisses  prometheus.Counter
	RankingDuration     prometheus.Histogram
	RankedPlayers       prometheus.Gauge
	ChallengesCreated   prometheus.Counter
	ChallengesRejected  prometheus.Counter
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
