package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kwpid/HighCard-V2/internal/api/response"
	"github.com/kwpid/HighCard-V2/internal/stats"
	"github.com/kwpid/HighCard-V2/internal/storage"
)

// MatchHandler serves match history endpoints.
type MatchHandler struct {
	storage *storage.Service
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(store *storage.Service) *MatchHandler {
	return &MatchHandler{storage: store}
}

// GetRecent returns a player's most recent matches, newest first.
// Query params: limit (default 20, max 100).
func (h *MatchHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, fmt.Errorf("invalid limit: %q", raw))
			return
		}
		limit = parsed
	}
	if limit > 100 {
		limit = 100
	}

	matches, err := h.storage.GetRecentMatches(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, matches)
}

// GetStats summarizes a player's matches.
// Query params: game_type (optional), ranked (optional "true"/"false").
func (h *MatchHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	gameType := r.URL.Query().Get("game_type")

	var ranked *bool
	if raw := r.URL.Query().Get("ranked"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, fmt.Errorf("invalid ranked filter: %q", raw))
			return
		}
		ranked = &parsed
	}

	matchStats, err := h.storage.GetMatchStats(r.Context(), userID, gameType, ranked)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, matchStats)
}

// GetStreaks returns a player's win/loss streak summary over their most
// recent matches. Query params: limit (default 100).
func (h *MatchHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, fmt.Errorf("invalid limit: %q", raw))
			return
		}
		limit = parsed
	}

	matches, err := h.storage.GetRecentMatches(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	// GetRecentMatches is newest first; streaks walk oldest to newest.
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	streaks := stats.CalculateStreaks(matches)
	response.Success(w, map[string]any{
		"streaks": streaks,
		"current": stats.FormatCurrentStreak(streaks.CurrentStreak),
	})
}
