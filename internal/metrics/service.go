package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RankingComputations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_ranking_computations_total",
			Help: "The total number of times the ranking was recomputed from the store.",
		}),
		RankingCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_ranking_cache_hits_total",
			Help: "The total number of ranking reads served from the cache.",
		}),
		RankingCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_ranking_cache_misses_total",
			Help: "The total number of ranking reads that had to recompute.",
		}),
		RankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ladder_ranking_computation_duration_seconds",
			Help:    "The duration of a full ranking computation, fetches included.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RankedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ladder_ranked_players",
			Help: "The number of players in the last unfiltered ranking.",
		}),
		ChallengesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_challenges_created_total",
			Help: "The total number of challenges created.",
		}),
		ChallengesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_challenges_rejected_total",
			Help: "The total number of challenge attempts rejected by the eligibility rules.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ladder_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RankingComputations,
		s.RankingCacheHits,
		s.RankingCacheMisses,
		s.RankingDuration,
		s.RankedPlayers,
		s.ChallengesCreated,
		s.ChallengesRejected,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRankingComputations() {
	s.RankingComputations.Inc()
}

func (s *Service) IncRankingCacheHits() {
	s.RankingCacheHits.Inc()
}

func (s *Service) IncRankingCacheMisses() {
	s.RankingCacheMisses.Inc()
}

func (s *Service) ObserveRankingDuration(duration float64) {
	s.RankingDuration.Observe(duration)
}

func (s *Service) SetRankedPlayers(count int) {
	s.RankedPlayers.Set(float64(count))
}

func (s *Service) IncChallengesCreated() {
	s.ChallengesCreated.Inc()
}

func (s *Service) IncChallengesRejected() {
	s.ChallengesRejected.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
