package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kwpid/HighCard-V2/internal/api/response"
	"github.com/kwpid/HighCard-V2/internal/charts"
	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/storage"
	"github.com/kwpid/HighCard-V2/internal/storage/repository"
)

// MMRHandler serves rating history endpoints.
type MMRHandler struct {
	storage *storage.Service
}

// NewMMRHandler creates a new MMR handler.
func NewMMRHandler(store *storage.Service) *MMRHandler {
	return &MMRHandler{storage: store}
}

func gameTypeParam(r *http.Request) (string, error) {
	gameType := r.URL.Query().Get("game_type")
	if gameType == "" {
		return string(game.GameType1v1), nil
	}
	switch game.GameType(gameType) {
	case game.GameType1v1, game.GameType2v2:
		return gameType, nil
	}
	return "", fmt.Errorf("unknown game type: %q", gameType)
}

func timeRangeParams(r *http.Request) (start, end time.Time, err error) {
	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return start, end, fmt.Errorf("invalid start time: %q", raw)
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return start, end, fmt.Errorf("invalid end time: %q", raw)
		}
	}
	return start, end, nil
}

// GetHistory returns the raw rating timeline for one game type.
// Query params: game_type (default "1v1"), start, end (RFC 3339).
func (h *MMRHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	gameType, err := gameTypeParam(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	start, end, err := timeRangeParams(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	history, err := h.storage.GetMMRHistory(r.Context(), userID, gameType, start, end)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, history)
}

// GetTimeline returns a summarized rating progression.
// Query params: game_type, start, end, period ("all", "daily", "weekly", "monthly").
func (h *MMRHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	gameType, err := gameTypeParam(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	start, end, err := timeRangeParams(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	period := storage.TimelinePeriod(r.URL.Query().Get("period"))
	switch period {
	case "":
		period = storage.PeriodAll
	case storage.PeriodAll, storage.PeriodDaily, storage.PeriodWeekly, storage.PeriodMonthly:
	default:
		response.BadRequest(w, fmt.Errorf("unknown period: %q", period))
		return
	}

	timeline, err := h.storage.GetMMRTimeline(r.Context(), userID, gameType, start, end, period)
	if err != nil {
		response.NotFound(w, err)
		return
	}

	response.Success(w, timeline)
}

// GetChart renders the rating timeline as an interactive HTML page.
// Query params: game_type, start, end.
func (h *MMRHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	gameType, err := gameTypeParam(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	start, end, err := timeRangeParams(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	timeline, err := h.storage.GetMMRTimeline(r.Context(), userID, gameType, start, end, storage.PeriodAll)
	if err != nil {
		response.NotFound(w, err)
		return
	}

	cfg := charts.DefaultChartConfig()
	cfg.Title = fmt.Sprintf("%s MMR History", gameType)
	cfg.Subtitle = userID

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.WriteMMRChart(w, []*storage.Timeline{timeline}, cfg); err != nil {
		response.InternalError(w, err)
	}
}

// GetSeasonalPeaks returns every recorded per-season peak for one game type.
func (h *MMRHandler) GetSeasonalPeaks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, fmt.Errorf("missing user ID"))
		return
	}

	gameType, err := gameTypeParam(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	peaks, err := h.storage.GetSeasonalPeaks(r.Context(), userID, gameType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, peaks)
}
