package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mindflow/mindflow/internal/apperr"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/wellness"
)

// Handler holds API route handlers.
type Handler struct {
	svc *wellness.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *wellness.Service) *Handler {
	return &Handler{svc: svc}
}

// limitQuery reads the optional ?limit= parameter; 0 means the
// entity-specific default.
func limitQuery(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 0 {
		return 0
	}
	return limit
}

// decodeValid decodes the JSON body into req and validates it. Returns
// false after writing a 400 response.
func decodeValid[T interface{ Validate() error }](w http.ResponseWriter, r *http.Request, req *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := (*req).Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}

// ListHealthMetrics handles GET /health-metrics.
func (h *Handler) ListHealthMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.svc.HealthMetrics(r.Context(), limitQuery(r))
	if err != nil {
		slog.Error("list health metrics failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// CreateHealthMetric handles POST /health-metrics.
func (h *Handler) CreateHealthMetric(w http.ResponseWriter, r *http.Request) {
	var req CreateHealthMetricRequest
	if !decodeValid(w, r, &req) {
		return
	}
	metric, err := h.svc.AddHealthMetric(r.Context(), models.InsertHealthMetric{
		Date:          req.Date,
		Steps:         req.Steps,
		HeartRate:     req.HeartRate,
		SleepHours:    req.SleepHours,
		ActiveMinutes: req.ActiveMinutes,
	})
	if err != nil {
		slog.Error("create health metric failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, metric)
}

// WeeklyTrends handles GET /weekly-trends.
func (h *Handler) WeeklyTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.svc.WeeklyTrends(r.Context())
	if err != nil {
		slog.Error("weekly trends failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

// StressAnalysis handles GET /stress-analysis.
func (h *Handler) StressAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.svc.StressAnalysis(r.Context())
	if err != nil {
		slog.Error("stress analysis failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// ListMoodEntries handles GET /mood-entries.
func (h *Handler) ListMoodEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.MoodEntries(r.Context(), limitQuery(r))
	if err != nil {
		slog.Error("list mood entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateMoodEntry handles POST /mood-entries.
func (h *Handler) CreateMoodEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateMoodEntryRequest
	if !decodeValid(w, r, &req) {
		return
	}
	entry, err := h.svc.CreateMoodEntry(r.Context(), models.InsertMoodEntry{Content: req.Content})
	if err != nil {
		slog.Error("create mood entry failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListFocusSessions handles GET /focus-sessions.
func (h *Handler) ListFocusSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.FocusSessions(r.Context(), limitQuery(r))
	if err != nil {
		slog.Error("list focus sessions failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ActiveFocusSession handles GET /focus-sessions/active.
func (h *Handler) ActiveFocusSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.ActiveSession(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrNoActiveSession) {
			writeJSON(w, http.StatusNotFound, errorBody("no active session found"))
		} else {
			slog.Error("active focus session failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// FocusStats handles GET /focus-stats.
func (h *Handler) FocusStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.FocusStats(r.Context())
	if err != nil {
		slog.Error("focus stats failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// StartFocusSession handles POST /focus-sessions/start.
func (h *Handler) StartFocusSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.StartFocus(r.Context())
	if err != nil {
		slog.Error("start focus session failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// EndFocusSession handles POST /focus-sessions/end.
func (h *Handler) EndFocusSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.EndFocus(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrNoActiveSession) {
			writeJSON(w, http.StatusNotFound, errorBody("no active session found"))
		} else {
			slog.Error("end focus session failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// ListChatMessages handles GET /chat/messages.
func (h *Handler) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.ChatMessages(r.Context(), limitQuery(r))
	if err != nil {
		slog.Error("list chat messages failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// SendChat handles POST /chat/send.
func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	var req ChatSendRequest
	if !decodeValid(w, r, &req) {
		return
	}
	userMsg, assistantMsg, err := h.svc.SendChat(r.Context(), req.Content, req.Mode)
	if err != nil {
		slog.Error("chat send failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ChatSendResponse{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	})
}

// ListActivities handles GET /mindfulness-activities.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.Activities(r.Context())
	if err != nil {
		slog.Error("list activities failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// GenerateActivity handles POST /mindfulness-activities/generate.
func (h *Handler) GenerateActivity(w http.ResponseWriter, r *http.Request) {
	var req GenerateActivityRequest
	if !decodeValid(w, r, &req) {
		return
	}
	activity, err := h.svc.GenerateActivity(r.Context(), req.Category)
	if err != nil {
		slog.Error("generate activity failed",
			slog.String("category", req.Category), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// CompleteActivity handles POST /mindfulness-activities/{id}/complete.
func (h *Handler) CompleteActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	activity, err := h.svc.CompleteActivity(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("activity not found"))
		} else {
			slog.Error("complete activity failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// GetSettings handles GET /settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings(r.Context())
	if err != nil {
		slog.Error("get settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PATCH /settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeValid(w, r, &req) {
		return
	}
	settings, err := h.svc.UpdateSettings(r.Context(), models.UserSettingsUpdate(req))
	if err != nil {
		slog.Error("update settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ClearData handles DELETE /data/clear.
func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAllData(r.Context()); err != nil {
		slog.Error("clear data failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ClearDataResponse{
		Success: true,
		Message: "All data cleared successfully",
	})
}
