package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

const profileColumns = `id, name, category, avatar_url, role, active,
	legacy_wins, legacy_losses, legacy_sets_won, legacy_sets_lost, legacy_games_won, legacy_games_lost,
	legacy_tiebreaks_won, legacy_tiebreaks_lost, legacy_matches_played, legacy_matches_with_tiebreak, legacy_points`

const matchColumns = `id, player_a_id, player_b_id, score_a_blob, score_b_blob, winner_id, type, status, played_at, created_at`

const challengeColumns = `id, challenger_id, challenged_id, month_ref, status, created_at, updated_at`

// UpsertProfile inserts a profile or replaces every field of an existing one.
func (s *store) UpsertProfile(ctx context.Context, p PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			avatar_url = excluded.avatar_url,
			role = excluded.role,
			active = excluded.active,
			legacy_wins = excluded.legacy_wins,
			legacy_losses = excluded.legacy_losses,
			legacy_sets_won = excluded.legacy_sets_won,
			legacy_sets_lost = excluded.legacy_sets_lost,
			legacy_games_won = excluded.legacy_games_won,
			legacy_games_lost = excluded.legacy_games_lost,
			legacy_tiebreaks_won = excluded.legacy_tiebreaks_won,
			legacy_tiebreaks_lost = excluded.legacy_tiebreaks_lost,
			legacy_matches_played = excluded.legacy_matches_played,
			legacy_matches_with_tiebreak = excluded.legacy_matches_with_tiebreak,
			legacy_points = excluded.legacy_points;
	`,
		p.ID, p.Name, p.Category, p.AvatarURL, string(p.Role), p.Active,
		p.Legacy.Wins, p.Legacy.Losses, p.Legacy.SetsWon, p.Legacy.SetsLost, p.Legacy.GamesWon, p.Legacy.GamesLost,
		p.Legacy.TiebreaksWon, p.Legacy.TiebreaksLost, p.Legacy.MatchesPlayed, p.Legacy.MatchesWithTiebreak, p.Legacy.Points,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
	}
	log.Debug("Upserted profile", "profileID", p.ID, "name", p.Name)
	return nil
}

// GetProfile retrieves a single profile by id.
func (s *store) GetProfile(ctx context.Context, id string) (*PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *store) ListEligibleProfiles(ctx context.Context, category string) ([]PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE active = 1 AND role IN (?, ?)`
	args := []any{string(RoleMember), string(RoleAdmin)}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]PlayerProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("Failed to scan profile row", "error", err)
			continue
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func scanProfile(scanner interface{ Scan(...any) error }) (*PlayerProfile, error) {
	var p PlayerProfile
	var category, avatarURL sql.NullString
	var role string
	err := scanner.Scan(
		&p.ID, &p.Name, &category, &avatarURL, &role, &p.Active,
		&p.Legacy.Wins, &p.Legacy.Losses, &p.Legacy.SetsWon, &p.Legacy.SetsLost, &p.Legacy.GamesWon, &p.Legacy.GamesLost,
		&p.Legacy.TiebreaksWon, &p.Legacy.TiebreaksLost, &p.Legacy.MatchesPlayed, &p.Legacy.MatchesWithTiebreak, &p.Legacy.Points,
	)
	if err != nil {
		return nil, err
	}
	p.Role = Role(role)
	if category.Valid {
		p.Category = &category.String
	}
	if avatarURL.Valid {
		p.AvatarURL = &avatarURL.String
	}
	return &p, nil
}

// UpsertMatch inserts a match or updates its scores, winner and status.
func (s *store) UpsertMatch(ctx context.Context, m *MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scoreA, err := msgpack.Marshal(m.ScoreA)
	if err != nil {
		return fmt.Errorf("failed to encode score_a: %w", err)
	}
	scoreB, err := msgpack.Marshal(m.ScoreB)
	if err != nil {
		return fmt.Errorf("failed to encode score_b: %w", err)
	}
	var winner sql.NullString
	if m.WinnerID != "" {
		winner = sql.NullString{String: m.WinnerID, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (`+matchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player_a_id = excluded.player_a_id,
			player_b_id = excluded.player_b_id,
			score_a_blob = excluded.score_a_blob,
			score_b_blob = excluded.score_b_blob,
			winner_id = excluded.winner_id,
			type = excluded.type,
			status = excluded.status,
			played_at = excluded.played_at;
	`, m.ID, m.PlayerAID, m.PlayerBID, scoreA, scoreB, winner, string(m.Type), string(m.Status), m.PlayedAt, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", m.ID, err)
	}
	log.Debug("Upserted match", "matchID", m.ID, "status", m.Status)
	return nil
}

func (s *store) ListFinishedMatches(ctx context.Context) ([]MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE status = ? AND type IN (?, ?, ?)
		ORDER BY played_at ASC
	`, string(MatchStatusFinished), string(MatchTypeChallenge), string(MatchTypeRankingChallenge), string(MatchTypeSuperSet))
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]MatchRecord, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*MatchRecord, error) {
	var m MatchRecord
	var scoreA, scoreB []byte
	var winner sql.NullString
	var matchType, status string
	err := scanner.Scan(&m.ID, &m.PlayerAID, &m.PlayerBID, &scoreA, &scoreB, &winner, &matchType, &status, &m.PlayedAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.WinnerID = winner.String
	m.Type = MatchType(matchType)
	m.Status = MatchStatus(status)
	if len(scoreA) > 0 {
		if err := msgpack.Unmarshal(scoreA, &m.ScoreA); err != nil {
			log.Error("Failed to decode score_a_blob", "error", err, "matchID", m.ID)
		}
	}
	if len(scoreB) > 0 {
		if err := msgpack.Unmarshal(scoreB, &m.ScoreB); err != nil {
			log.Error("Failed to decode score_b_blob", "error", err, "matchID", m.ID)
		}
	}
	return &m, nil
}

func (s *store) CreateChallenge(ctx context.Context, c *ChallengeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO challenges (`+challengeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ChallengerID, c.ChallengedID, c.MonthRef, string(c.Status), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	log.Info("Created challenge", "challengeID", c.ID, "challenger", c.ChallengerID, "challenged", c.ChallengedID, "month", c.MonthRef)
	return nil
}

func (s *store) GetChallenge(ctx context.Context, id string) (*ChallengeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+challengeColumns+` FROM challenges WHERE id = ?`, id)
	c, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("challenge %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return c, nil
}

func (s *store) UpdateChallengeStatus(ctx context.Context, id string, status ChallengeStatus, updatedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE challenges SET status = ?, updated_at = ? WHERE id = ?`, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update challenge status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("challenge %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *store) CountChallenges(ctx context.Context, playerID string, role ChallengeRole, monthRef string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	column := "challenger_id"
	if role == AsChallenged {
		column = "challenged_id"
	}
	args := []any{playerID, monthRef}
	for _, st := range VoidChallengeStatuses {
		args = append(args, string(st))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(VoidChallengeStatuses)), ", ")

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM challenges
		WHERE `+column+` = ? AND month_ref = ? AND status NOT IN (`+placeholders+`)
	`, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count challenges: %w", err)
	}
	return count, nil
}

func (s *store) ListOpenChallenges(ctx context.Context) ([]ChallengeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+challengeColumns+` FROM challenges
		WHERE status IN (?, ?, ?)
		ORDER BY created_at ASC
	`, string(ChallengeProposed), string(ChallengeAccepted), string(ChallengeScheduled))
	if err != nil {
		return nil, fmt.Errorf("failed to query open challenges: %w", err)
	}
	defer rows.Close()

	challenges := make([]ChallengeRecord, 0)
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			log.Error("Failed to scan challenge row", "error", err)
			continue
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

func scanChallenge(scanner interface{ Scan(...any) error }) (*ChallengeRecord, error) {
	var c ChallengeRecord
	var status string
	if err := scanner.Scan(&c.ID, &c.ChallengerID, &c.ChallengedID, &c.MonthRef, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = ChallengeStatus(status)
	return &c, nil
}
