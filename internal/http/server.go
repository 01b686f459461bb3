package http

import (
	"net/http"

	"github.com/mauv0809/club-ladder/internal/challenge"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/config"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

func NewServer(store club.ClubStore, engine ranking.Engine, challenges *challenge.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Ranking:        engine,
		Challenges:     challenges,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	slackVerified := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /ranking", Chain(s.RankingHandler(), paramsMiddleware))
	s.Router.Handle("GET /ranking/categories", Chain(s.RankingByCategoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/stats", Chain(s.PlayerStatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/opponents", Chain(s.OpponentsHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/limits", Chain(s.LimitsHandler(), paramsMiddleware))

	s.Router.Handle("GET /challenges/check", Chain(s.CheckChallengeHandler(), paramsMiddleware))
	s.Router.Handle("POST /challenges", Chain(s.CreateChallengeHandler(), paramsMiddleware))
	s.Router.Handle("POST /challenges/{id}/status", Chain(s.UpdateChallengeStatusHandler(), paramsMiddleware))
	s.Router.Handle("POST /challenges/expire", Chain(s.ExpireChallengesHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/"+string(pubsub.EventMatchFinished), Chain(s.MatchFinishedHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/ranking", Chain(s.RankingCommandHandler(), paramsMiddleware, slackVerified))
	s.Router.Handle("POST /slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware, slackVerified))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
