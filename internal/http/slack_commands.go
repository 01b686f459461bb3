package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// findByName matches a player name case-insensitively, falling back to a
// unique partial match.
func findByName(ranked []ranking.PlayerStats, query string) *ranking.PlayerStats {
	var partial *ranking.PlayerStats
	matches := 0
	lower := strings.ToLower(query)
	for i := range ranked {
		if strings.EqualFold(ranked[i].Name, query) {
			return &ranked[i]
		}
		if strings.Contains(strings.ToLower(ranked[i].Name), lower) {
			partial = &ranked[i]
			matches++
		}
	}
	if matches == 1 {
		return partial
	}
	return nil
}

// RankingCommandHandler returns a handler for the /ranking Slack command. The
// optional text restricts the board to one category.
func (s *Server) RankingCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		category := strings.TrimSpace(r.FormValue("text"))
		log.Info("Received ranking command", "category", category)

		var groups []ranking.CategoryGroup
		if category == "" {
			groups = s.Ranking.GetRankingByCategory(r.Context(), false)
		} else {
			groups = s.Ranking.Categories().Group(s.Ranking.GetRankingStats(r.Context(), ranking.Options{Category: category}))
		}

		msg, err := s.Notifier.FormatRankingResponse(groups)
		if err != nil {
			http.Error(w, "Failed to format ranking", http.StatusInternalServerError)
			log.Error("Failed to format ranking", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.TrimSpace(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)

		stats := findByName(s.Ranking.GetRankingStats(r.Context(), ranking.Options{}), playerName)
		var msg any
		var err error
		if stats == nil {
			log.Warn("Could not find player stats", "player", playerName)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = s.Notifier.FormatPlayerStatsResponse(stats, playerName)
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
