package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindflow/mindflow/internal/wellness"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *wellness.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Health metrics and derived trends.
	r.Get("/health-metrics", h.ListHealthMetrics)
	r.Post("/health-metrics", h.CreateHealthMetric)
	r.Get("/weekly-trends", h.WeeklyTrends)

	// Stress analysis.
	r.Get("/stress-analysis", h.StressAnalysis)

	// Mood journal.
	r.Get("/mood-entries", h.ListMoodEntries)
	r.Post("/mood-entries", h.CreateMoodEntry)

	// Focus tracking.
	r.Get("/focus-sessions", h.ListFocusSessions)
	r.Get("/focus-sessions/active", h.ActiveFocusSession)
	r.Post("/focus-sessions/start", h.StartFocusSession)
	r.Post("/focus-sessions/end", h.EndFocusSession)
	r.Get("/focus-stats", h.FocusStats)

	// Chat.
	r.Get("/chat/messages", h.ListChatMessages)
	r.Post("/chat/send", h.SendChat)

	// Mindfulness.
	r.Get("/mindfulness-activities", h.ListActivities)
	r.Post("/mindfulness-activities/generate", h.GenerateActivity)
	r.Post("/mindfulness-activities/{id}/complete", h.CompleteActivity)

	// Settings.
	r.Get("/settings", h.GetSettings)
	r.Patch("/settings", h.UpdateSettings)

	// Data management.
	r.Delete("/data/clear", h.ClearData)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
