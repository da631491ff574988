package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kwpid/HighCard-V2/internal/api/handlers"
	"github.com/kwpid/HighCard-V2/internal/api/response"
	"github.com/kwpid/HighCard-V2/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		profileHandler := handlers.NewProfileHandler(s.storage)
		r.Route("/profiles/{userID}", func(r chi.Router) {
			r.Get("/", profileHandler.GetProfile)
			r.Get("/titles", profileHandler.GetTitles)
			r.Post("/equip", profileHandler.EquipTitle)
		})

		matchHandler := handlers.NewMatchHandler(s.storage)
		r.Route("/matches", func(r chi.Router) {
			r.Get("/{userID}/recent", matchHandler.GetRecent)
			r.Get("/{userID}/stats", matchHandler.GetStats)
			r.Get("/{userID}/streaks", matchHandler.GetStreaks)
		})

		mmrHandler := handlers.NewMMRHandler(s.storage)
		r.Route("/mmr", func(r chi.Router) {
			r.Get("/{userID}/history", mmrHandler.GetHistory)
			r.Get("/{userID}/timeline", mmrHandler.GetTimeline)
			r.Get("/{userID}/chart", mmrHandler.GetChart)
			r.Get("/{userID}/peaks", mmrHandler.GetSeasonalPeaks)
		})
	})
}

// healthCheck reports server liveness and build information.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}
