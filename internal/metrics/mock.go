package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	rankingComputations int
	cacheHits           int
	cacheMisses         int
	rankingDurations    []float64
	rankedPlayers       int
	challengesCreated   int
	challengesRejected  int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rankingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRankingComputations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingComputations++
}

func (m *Mock) IncRankingCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *Mock) IncRankingCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *Mock) ObserveRankingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingDurations = append(m.rankingDurations, duration)
}

func (m *Mock) SetRankedPlayers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankedPlayers = count
}

func (m *Mock) IncChallengesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challengesCreated++
}

func (m *Mock) IncChallengesRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challengesRejected++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RankingComputations returns the number of times IncRankingComputations was called.
func (m *Mock) RankingComputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankingComputations
}

// CacheHits returns the number of times IncRankingCacheHits was called.
func (m *Mock) CacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits
}

// CacheMisses returns the number of times IncRankingCacheMisses was called.
func (m *Mock) CacheMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses
}

// RankedPlayers returns the last value passed to SetRankedPlayers.
func (m *Mock) RankedPlayers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankedPlayers
}

// ChallengesCreated returns the number of times IncChallengesCreated was called.
func (m *Mock) ChallengesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.challengesCreated
}

// ChallengesRejected returns the number of times IncChallengesRejected was called.
func (m *Mock) ChallengesRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.challengesRejected
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
