package club

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertProfileFunc         func(ctx context.Context, profile PlayerProfile) error
	GetProfileFunc            func(ctx context.Context, id string) (*PlayerProfile, error)
	ListEligibleProfilesFunc  func(ctx context.Context, category string) ([]PlayerProfile, error)
	UpsertMatchFunc           func(ctx context.Context, match *MatchRecord) error
	ListFinishedMatchesFunc   func(ctx context.Context) ([]MatchRecord, error)
	CreateChallengeFunc       func(ctx context.Context, challenge *ChallengeRecord) error
	GetChallengeFunc          func(ctx context.Context, id string) (*ChallengeRecord, error)
	UpdateChallengeStatusFunc func(ctx context.Context, id string, status ChallengeStatus, updatedAt int64) error
	CountChallengesFunc       func(ctx context.Context, playerID string, role ChallengeRole, monthRef string) (int, error)
	ListOpenChallengesFunc    func(ctx context.Context) ([]ChallengeRecord, error)

	// Call records
	ListEligibleProfilesCalls  []string
	ListFinishedMatchesCalls   int
	UpsertMatchCalls           []*MatchRecord
	CreateChallengeCalls       []*ChallengeRecord
	UpdateChallengeStatusCalls []struct {
		ID     string
		Status ChallengeStatus
	}
	CountChallengesCalls []struct {
		PlayerID string
		Role     ChallengeRole
		MonthRef string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListEligibleProfilesCalls = nil
	m.ListFinishedMatchesCalls = 0
	m.UpsertMatchCalls = nil
	m.CreateChallengeCalls = nil
	m.UpdateChallengeStatusCalls = nil
	m.CountChallengesCalls = nil
}

func (m *MockStore) UpsertProfile(ctx context.Context, profile PlayerProfile) error {
	m.mu.Lock()
	fn := m.UpsertProfileFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, profile)
	}
	return nil
}

func (m *MockStore) GetProfile(ctx context.Context, id string) (*PlayerProfile, error) {
	m.mu.Lock()
	fn := m.GetProfileFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListEligibleProfiles(ctx context.Context, category string) ([]PlayerProfile, error) {
	m.mu.Lock()
	m.ListEligibleProfilesCalls = append(m.ListEligibleProfilesCalls, category)
	fn := m.ListEligibleProfilesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, category)
	}
	return nil, nil
}

func (m *MockStore) UpsertMatch(ctx context.Context, match *MatchRecord) error {
	m.mu.Lock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	fn := m.UpsertMatchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, match)
	}
	return nil
}

func (m *MockStore) ListFinishedMatches(ctx context.Context) ([]MatchRecord, error) {
	m.mu.Lock()
	m.ListFinishedMatchesCalls++
	fn := m.ListFinishedMatchesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, nil
}

func (m *MockStore) CreateChallenge(ctx context.Context, challenge *ChallengeRecord) error {
	m.mu.Lock()
	m.CreateChallengeCalls = append(m.CreateChallengeCalls, challenge)
	fn := m.CreateChallengeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, challenge)
	}
	return nil
}

func (m *MockStore) GetChallenge(ctx context.Context, id string) (*ChallengeRecord, error) {
	m.mu.Lock()
	fn := m.GetChallengeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpdateChallengeStatus(ctx context.Context, id string, status ChallengeStatus, updatedAt int64) error {
	m.mu.Lock()
	m.UpdateChallengeStatusCalls = append(m.UpdateChallengeStatusCalls, struct {
		ID     string
		Status ChallengeStatus
	}{id, status})
	fn := m.UpdateChallengeStatusFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id, status, updatedAt)
	}
	return nil
}

func (m *MockStore) CountChallenges(ctx context.Context, playerID string, role ChallengeRole, monthRef string) (int, error) {
	m.mu.Lock()
	m.CountChallengesCalls = append(m.CountChallengesCalls, struct {
		PlayerID string
		Role     ChallengeRole
		MonthRef string
	}{playerID, role, monthRef})
	fn := m.CountChallengesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, playerID, role, monthRef)
	}
	return 0, nil
}

func (m *MockStore) ListOpenChallenges(ctx context.Context) ([]ChallengeRecord, error) {
	m.mu.Lock()
	fn := m.ListOpenChallengesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, nil
}
