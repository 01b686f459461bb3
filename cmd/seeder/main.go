package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

const (
	playersPerCategory = 6
	numMatches         = 200
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "ladder.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	store := club.New(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var players []club.PlayerProfile
	for _, cat := range ranking.DefaultCategories {
		for i := 0; i < playersPerCategory; i++ {
			category := cat
			p := club.PlayerProfile{
				ID:       uuid.NewString(),
				Name:     fmt.Sprintf("Seeder %s %c", category[:1], 'A'+i),
				Category: &category,
				Role:     club.RoleMember,
				Active:   true,
				Legacy: club.LegacyStats{
					Wins:   rng.Intn(5),
					Losses: rng.Intn(5),
					Points: rng.Intn(5) * ranking.ChallengeWinPoints,
				},
			}
			if err := store.UpsertProfile(ctx, p); err != nil {
				log.Fatalf("Failed to insert profile %s: %s", p.Name, err)
			}
			players = append(players, p)
		}
	}
	log.Info("Ensured seeder profiles exist.", "count", len(players))

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		a := players[rng.Intn(len(players))]
		b := players[rng.Intn(len(players))]
		if a.ID == b.ID {
			continue
		}
		match := randomMatch(rng, a.ID, b.ID)
		if err := store.UpsertMatch(ctx, &match); err != nil {
			log.Fatalf("Failed to insert match: %s", err)
		}
	}

	log.Info("Successfully inserted dummy matches.", "total", numMatches, "duration", time.Since(startTime))
}

// randomMatch plays a best-of-three with a super tiebreak decider, or a
// single SuperSet one time in five.
func randomMatch(rng *rand.Rand, a, b string) club.MatchRecord {
	playedAt := time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
	m := club.MatchRecord{
		ID:        uuid.NewString(),
		PlayerAID: a,
		PlayerBID: b,
		Type:      club.MatchTypeChallenge,
		Status:    club.MatchStatusFinished,
		PlayedAt:  playedAt.Unix(),
		CreatedAt: playedAt.Unix(),
	}

	if rng.Intn(5) == 0 {
		m.Type = club.MatchTypeSuperSet
		won, lost := 6, rng.Intn(5)
		if rng.Intn(2) == 0 {
			m.ScoreA, m.ScoreB, m.WinnerID = []int{won}, []int{lost}, a
		} else {
			m.ScoreA, m.ScoreB, m.WinnerID = []int{lost}, []int{won}, b
		}
		return m
	}

	setsA, setsB := 0, 0
	for set := 0; set < ranking.MaxSets && setsA < 2 && setsB < 2; set++ {
		won, lost := 6, rng.Intn(5)
		if set == ranking.MaxSets-1 {
			won, lost = 10, rng.Intn(9)
		} else if rng.Intn(4) == 0 {
			won, lost = 7, 6
		}
		if rng.Intn(2) == 0 {
			m.ScoreA, m.ScoreB = append(m.ScoreA, won), append(m.ScoreB, lost)
			setsA++
		} else {
			m.ScoreA, m.ScoreB = append(m.ScoreA, lost), append(m.ScoreB, won)
			setsB++
		}
	}
	m.WinnerID = a
	if setsB > setsA {
		m.WinnerID = b
	}
	return m
}
