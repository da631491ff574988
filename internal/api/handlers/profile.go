// Package handlers implements the HTTP handlers for the REST API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kwpid/HighCard-V2/internal/api/response"
	"github.com/kwpid/HighCard-V2/internal/progression"
	"github.com/kwpid/HighCard-V2/internal/storage"
)

// ProfileHandler serves player profile endpoints.
type ProfileHandler struct {
	storage *storage.Service
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(store *storage.Service) *ProfileHandler {
	return &ProfileHandler{storage: store}
}

// GetProfile returns a player's full profile document.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	profile, err := h.storage.Profiles().Load(r.Context(), userID, userID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, profile)
}

// GetTitles returns a player's owned titles and the equipped one.
func (h *ProfileHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	profile, err := h.storage.Profiles().Load(r.Context(), userID, userID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"owned":    profile.OwnedTitles,
		"equipped": profile.EquippedTitleID,
	})
}

// EquipTitleRequest is the body for the equip endpoint. An empty title ID
// unequips the current title.
type EquipTitleRequest struct {
	TitleID string `json:"title_id"`
}

// EquipTitle equips (or unequips) a title on a player's profile.
func (h *ProfileHandler) EquipTitle(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	var req EquipTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	profile, err := h.storage.Profiles().Load(r.Context(), userID, userID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	if err := progression.EquipTitle(&profile, req.TitleID); err != nil {
		if errors.Is(err, progression.ErrTitleNotOwned) {
			response.BadRequest(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	if err := h.storage.Profiles().Save(r.Context(), userID, profile); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, map[string]string{"equipped": profile.EquippedTitleID})
}
