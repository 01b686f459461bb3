package club_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return club.New(db), db, dbTeardown
}

func strPtr(s string) *string { return &s }

func TestUpsertAndListEligibleProfiles(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	profiles := []club.PlayerProfile{
		{ID: "p1", Name: "Ana", Category: strPtr("4ª Classe"), Role: club.RoleMember, Active: true, Legacy: club.LegacyStats{Wins: 3, Points: 250}},
		{ID: "p2", Name: "Bruno", Category: strPtr("5ª Classe"), Role: club.RoleAdmin, Active: true},
		{ID: "p3", Name: "Carla", Category: strPtr("4ª Classe"), Role: club.RoleProfessor, Active: true},
		{ID: "p4", Name: "Duda", Category: strPtr("4ª Classe"), Role: club.RoleMember, Active: false},
		{ID: "p5", Name: "Edu", Role: club.RoleMember, Active: true},
	}
	for _, p := range profiles {
		require.NoError(t, store.UpsertProfile(ctx, p))
	}

	t.Run("all categories", func(t *testing.T) {
		got, err := store.ListEligibleProfiles(ctx, "")
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"p1", "p2", "p5"}, ids, "only active members and admins, ordered by name")
		assert.Equal(t, 250, got[0].Legacy.Points)
		assert.Equal(t, 3, got[0].Legacy.Wins)
		assert.Nil(t, got[2].Category)
	})

	t.Run("category filter", func(t *testing.T) {
		got, err := store.ListEligibleProfiles(ctx, "4ª Classe")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
	})

	t.Run("upsert updates existing profile", func(t *testing.T) {
		p := profiles[1]
		p.Name = "Bruno M."
		p.Category = strPtr("4ª Classe")
		require.NoError(t, store.UpsertProfile(ctx, p))

		got, err := store.GetProfile(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, "Bruno M.", got.Name)
		require.NotNil(t, got.Category)
		assert.Equal(t, "4ª Classe", *got.Category)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := store.GetProfile(ctx, "nope")
		assert.ErrorIs(t, err, club.ErrNotFound)
	})
}

func TestListFinishedMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	matches := []*club.MatchRecord{
		{ID: "m1", PlayerAID: "a", PlayerBID: "b", ScoreA: []int{6, 6}, ScoreB: []int{2, 3}, WinnerID: "a", Type: club.MatchTypeChallenge, Status: club.MatchStatusFinished, PlayedAt: 1},
		{ID: "m2", PlayerAID: "a", PlayerBID: "b", ScoreA: []int{4}, ScoreB: []int{6}, WinnerID: "b", Type: club.MatchTypeSuperSet, Status: club.MatchStatusFinished, PlayedAt: 2},
		{ID: "m3", PlayerAID: "a", PlayerBID: "b", Type: club.MatchTypeChallenge, Status: club.MatchStatusPending, PlayedAt: 3},
		{ID: "m4", PlayerAID: "a", PlayerBID: "b", ScoreA: []int{6, 6}, ScoreB: []int{0, 0}, WinnerID: "a", Type: club.MatchTypeLegacy, Status: club.MatchStatusFinished, PlayedAt: 4},
		{ID: "m5", PlayerAID: "a", PlayerBID: "b", ScoreA: []int{6, 3, 10}, ScoreB: []int{4, 6, 8}, WinnerID: "a", Type: club.MatchTypeRankingChallenge, Status: club.MatchStatusFinished, PlayedAt: 5},
	}
	for _, m := range matches {
		require.NoError(t, store.UpsertMatch(ctx, m))
	}

	got, err := store.ListFinishedMatches(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3, "pending and legacy matches are excluded")
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, []int{6, 6}, got[0].ScoreA)
	assert.Equal(t, []int{2, 3}, got[0].ScoreB)
	assert.Equal(t, club.MatchTypeSuperSet, got[1].Type)
	assert.Equal(t, []int{6, 3, 10}, got[2].ScoreA)

	// Finishing the pending match makes it visible.
	matches[2].Status = club.MatchStatusFinished
	matches[2].ScoreA = []int{6, 6}
	matches[2].ScoreB = []int{1, 1}
	matches[2].WinnerID = "a"
	require.NoError(t, store.UpsertMatch(ctx, matches[2]))
	got, err = store.ListFinishedMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestChallenges(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	for _, id := range []string{"x", "y", "z"} {
		require.NoError(t, store.UpsertProfile(ctx, club.PlayerProfile{ID: id, Name: id, Role: club.RoleMember, Active: true}))
	}

	records := []*club.ChallengeRecord{
		{ID: "c1", ChallengerID: "x", ChallengedID: "y", MonthRef: "2026-10", Status: club.ChallengeProposed, CreatedAt: 1, UpdatedAt: 1},
		{ID: "c2", ChallengerID: "x", ChallengedID: "z", MonthRef: "2026-10", Status: club.ChallengeDeclined, CreatedAt: 2, UpdatedAt: 2},
		{ID: "c3", ChallengerID: "x", ChallengedID: "y", MonthRef: "2026-09", Status: club.ChallengeFinished, CreatedAt: 3, UpdatedAt: 3},
		{ID: "c4", ChallengerID: "z", ChallengedID: "y", MonthRef: "2026-10", Status: club.ChallengeScheduled, CreatedAt: 4, UpdatedAt: 4},
	}
	for _, c := range records {
		require.NoError(t, store.CreateChallenge(ctx, c))
	}

	tests := []struct {
		name     string
		playerID string
		role     club.ChallengeRole
		month    string
		want     int
	}{
		{"sent this month excludes void", "x", club.AsChallenger, "2026-10", 1},
		{"sent previous month", "x", club.AsChallenger, "2026-09", 1},
		{"received this month", "y", club.AsChallenged, "2026-10", 2},
		{"received void only", "z", club.AsChallenged, "2026-10", 0},
		{"nothing sent", "y", club.AsChallenger, "2026-10", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.CountChallenges(ctx, tt.playerID, tt.role, tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("status update releases quota", func(t *testing.T) {
		require.NoError(t, store.UpdateChallengeStatus(ctx, "c1", club.ChallengeCancelled, 10))
		got, err := store.CountChallenges(ctx, "x", club.AsChallenger, "2026-10")
		require.NoError(t, err)
		assert.Equal(t, 0, got)

		c, err := store.GetChallenge(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, club.ChallengeCancelled, c.Status)
		assert.Equal(t, int64(10), c.UpdatedAt)
	})

	t.Run("update unknown challenge", func(t *testing.T) {
		err := store.UpdateChallengeStatus(ctx, "missing", club.ChallengeAccepted, 1)
		assert.ErrorIs(t, err, club.ErrNotFound)
	})

	t.Run("open challenges", func(t *testing.T) {
		open, err := store.ListOpenChallenges(ctx)
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, "c4", open[0].ID)
	})
}

func TestChallengeStatusIsVoid(t *testing.T) {
	assert.True(t, club.ChallengeCancelled.IsVoid())
	assert.True(t, club.ChallengeExpired.IsVoid())
	assert.True(t, club.ChallengeDeclined.IsVoid())
	assert.False(t, club.ChallengeProposed.IsVoid())
	assert.False(t, club.ChallengeFinished.IsVoid())
}
