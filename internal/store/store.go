// Package store implements the in-memory entity store and its derivations.
package store

import "github.com/mindflow/mindflow/internal/models"

// Default list limits per entity kind.
const (
	DefaultMetricsLimit  = 30
	DefaultMoodsLimit    = 50
	DefaultSessionsLimit = 20
	DefaultMessagesLimit = 100
)

// Store is the interface for all entity persistence and read-side
// derivations. Update operations return apperr.ErrNotFound when the
// target id is absent; creates never fail for well-formed input.
type Store interface {
	// Users
	GetUser(id string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	CreateUser(in models.InsertUser) (models.User, error)

	// Health metrics
	CreateHealthMetric(in models.InsertHealthMetric) (models.HealthMetric, error)
	ListHealthMetrics(limit int) ([]models.HealthMetric, error)
	// WeeklyTrends projects the 7 most recent metrics, oldest first,
	// into labelled per-day trend points.
	WeeklyTrends() ([]models.TrendPoint, error)

	// Mood entries
	CreateMoodEntry(in models.InsertMoodEntry) (models.MoodEntry, error)
	ListMoodEntries(limit int) ([]models.MoodEntry, error)
	UpdateMoodEntry(id string, upd models.MoodEntryUpdate) (models.MoodEntry, error)

	// Focus sessions
	CreateFocusSession(in models.InsertFocusSession) (models.FocusSession, error)
	ListFocusSessions(limit int) ([]models.FocusSession, error)
	UpdateFocusSession(id string, upd models.FocusSessionUpdate) (models.FocusSession, error)
	// ActiveFocusSession returns the single in-progress session, or
	// apperr.ErrNoActiveSession.
	ActiveFocusSession() (models.FocusSession, error)
	// StartFocusSession closes any active session, then opens a fresh
	// one. The close-then-open sequence is atomic with respect to all
	// other store operations.
	StartFocusSession() (models.FocusSession, error)
	// EndFocusSession closes the active session, splitting the elapsed
	// whole minutes into focused/distracted time. Returns
	// apperr.ErrNoActiveSession when no session is active.
	EndFocusSession() (models.FocusSession, error)
	// FocusStats sums sessions that started since local midnight.
	FocusStats() (models.FocusStats, error)

	// Chat messages
	CreateChatMessage(in models.InsertChatMessage) (models.ChatMessage, error)
	// ListChatMessages returns messages in ascending creation order,
	// keeping only the most recent limit entries.
	ListChatMessages(limit int) ([]models.ChatMessage, error)

	// Mindfulness activities
	CreateMindfulnessActivity(in models.InsertMindfulnessActivity) (models.MindfulnessActivity, error)
	ListMindfulnessActivities() ([]models.MindfulnessActivity, error)
	UpdateMindfulnessActivity(id string, upd models.MindfulnessActivityUpdate) (models.MindfulnessActivity, error)
	// CompleteMindfulnessActivity flips IsCompleted false->true and
	// stamps CompletedAt on that transition only.
	CompleteMindfulnessActivity(id string) (models.MindfulnessActivity, error)

	// Settings singleton
	Settings() (models.UserSettings, error)
	UpdateSettings(upd models.UserSettingsUpdate) (models.UserSettings, error)

	// ClearAllData wipes every collection and re-seeds the sample data.
	ClearAllData() error
}
