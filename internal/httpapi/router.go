// Package httpapi exposes the read-only HTTP surface: health, leaderboard,
// catalog summary and user profiles. All quiz state changes go through the
// chat transport; nothing here writes.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quizbot/internal/catalog"
)

func NewRouter(leaderboard LeaderboardService, profiles ProfileReader, cat *catalog.Catalog, log *zap.SugaredLogger) http.Handler {
	api := &API{leaderboard: leaderboard, profiles: profiles, catalog: cat, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", api.HandleHealth)
	r.Get("/api/leaderboard", api.HandleLeaderboard)
	r.Get("/api/subjects", api.HandleSubjects)
	r.Get("/api/users/{userID}", api.HandleProfile)

	return r
}
