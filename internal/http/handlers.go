package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/challenge"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors to status codes.
func respondError(w http.ResponseWriter, err error) {
	var rejected *challenge.RejectedError
	switch {
	case errors.As(err, &rejected):
		respondJSON(w, http.StatusConflict, errorResponse{Error: challenge.ErrNotAllowed.Error(), Reason: rejected.Reason})
	case errors.Is(err, challenge.ErrInvalidRequest):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, challenge.ErrPlayerNotFound), errors.Is(err, club.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, challenge.ErrInvalidTransition):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		log.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func isRefresh(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "true"
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// RankingHandler returns the ranked players, optionally for one category.
func (s *Server) RankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := ranking.Options{
			Category:     r.URL.Query().Get("category"),
			ForceRefresh: isRefresh(r),
		}
		respondJSON(w, http.StatusOK, s.Ranking.GetRankingStats(r.Context(), opts))
	}
}

func (s *Server) RankingByCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Ranking.GetRankingByCategory(r.Context(), isRefresh(r)))
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		player, ok := s.Ranking.GetPlayer(r.Context(), id, isRefresh(r))
		if !ok {
			respondError(w, fmt.Errorf("%w: %s", challenge.ErrPlayerNotFound, id))
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) OpponentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opponents, err := s.Challenges.AvailableOpponents(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, opponents)
	}
}

func (s *Server) LimitsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Ranking.CheckMonthlyChallengeLimit(r.Context(), r.PathValue("id")))
	}
}

// CheckChallengeHandler reports whether a challenge would be accepted now.
func (s *Server) CheckChallengeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := challenge.CreateRequest{
			ChallengerID: r.URL.Query().Get("challenger"),
			ChallengedID: r.URL.Query().Get("target"),
		}
		decision, err := s.Challenges.Check(r.Context(), req)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, decision)
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", challenge.ErrInvalidRequest, err)
	}
	return nil
}

func (s *Server) CreateChallengeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req challenge.CreateRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, err)
			return
		}
		record, err := s.Challenges.CreateChallenge(r.Context(), req, isDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, record)
	}
}

func (s *Server) UpdateChallengeStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req challenge.StatusRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, err)
			return
		}
		record, err := s.Challenges.UpdateStatus(r.Context(), r.PathValue("id"), req)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, record)
	}
}

func (s *Server) ExpireChallengesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expired, err := s.Challenges.ExpireStale(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, expireResponse{Expired: expired})
	}
}

// MatchFinishedHandler receives Pub/Sub pushes of finished matches, stores
// them and refreshes the cached ranking.
func (s *Server) MatchFinishedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match finished message", "body", string(bodyBytes))

		var envelope pubsub.PushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var match club.MatchRecord
		if err := s.pubsub.ProcessMessage(rawData, &match); err != nil {
			http.Error(w, "Invalid match payload", http.StatusBadRequest)
			return
		}
		if match.ID == "" || match.PlayerAID == "" || match.PlayerBID == "" {
			log.Warn("Dropping match without id or players", "messageID", envelope.Message.MessageID)
			http.Error(w, "Match id and players are required", http.StatusBadRequest)
			return
		}
		if match.Status == "" {
			match.Status = club.MatchStatusFinished
		}
		if match.CreatedAt == 0 {
			match.CreatedAt = time.Now().Unix()
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have stored finished match", "matchID", match.ID)
		} else {
			if err := s.Store.UpsertMatch(r.Context(), &match); err != nil {
				log.Error("Failed to store finished match", "matchID", match.ID, "error", err)
				http.Error(w, "Failed to store match", http.StatusInternalServerError)
				return
			}
			s.Ranking.GetRankingStats(r.Context(), ranking.Options{ForceRefresh: true})
		}
		log.Info("Processed finished match", "matchID", match.ID, "type", match.Type, "winner", match.WinnerID)
		w.Write([]byte("OK"))
	}
}
