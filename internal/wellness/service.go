// Package wellness coordinates the entity store, the AI provider, and the
// event broker. It is the only layer that sequences AI calls with store
// writes.
package wellness

import (
	"context"
	"math"

	"github.com/mindflow/mindflow/internal/ai"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/store"
)

// Event kinds published to the broker.
const (
	EventMoodCreated       = "mood.created"
	EventFocusStarted      = "focus.started"
	EventFocusEnded        = "focus.ended"
	EventActivityCompleted = "activity.completed"
	EventSettingsUpdated   = "settings.updated"
	EventDataCleared       = "data.cleared"
)

// contextWindow is how many recent metrics and moods feed the AI context.
const contextWindow = 7

// EventPublisher receives wellness change notifications. The SSE broker
// implements it; a nil publisher disables events.
type EventPublisher interface {
	PublishWellnessEvent(kind string, data any)
}

// Service is the application core behind the HTTP and MCP surfaces.
type Service struct {
	store    store.Store
	provider ai.Provider
	events   EventPublisher
}

// NewService creates a new wellness service. events may be nil.
func NewService(st store.Store, provider ai.Provider, events EventPublisher) *Service {
	return &Service{store: st, provider: provider, events: events}
}

func (s *Service) publish(kind string, data any) {
	if s.events != nil {
		s.events.PublishWellnessEvent(kind, data)
	}
}

// Health metrics

// HealthMetrics lists stored metrics, newest first.
func (s *Service) HealthMetrics(_ context.Context, limit int) ([]models.HealthMetric, error) {
	return s.store.ListHealthMetrics(limit)
}

// AddHealthMetric records a new metric.
func (s *Service) AddHealthMetric(_ context.Context, in models.InsertHealthMetric) (models.HealthMetric, error) {
	return s.store.CreateHealthMetric(in)
}

// WeeklyTrends projects the trailing week of metrics into chart points.
func (s *Service) WeeklyTrends(_ context.Context) ([]models.TrendPoint, error) {
	return s.store.WeeklyTrends()
}

// StressAnalysis assembles the wellness context and asks the provider for
// a stress verdict. Provider failures surface as the fixed fallback, never
// as an error.
func (s *Service) StressAnalysis(ctx context.Context) (models.StressAnalysis, error) {
	cc, err := s.buildContext()
	if err != nil {
		return models.StressAnalysis{}, err
	}
	return s.provider.AnalyzeStress(ctx, cc), nil
}

func (s *Service) buildContext() (models.ChatContext, error) {
	metrics, err := s.store.ListHealthMetrics(contextWindow)
	if err != nil {
		return models.ChatContext{}, err
	}
	moods, err := s.store.ListMoodEntries(contextWindow)
	if err != nil {
		return models.ChatContext{}, err
	}
	stats, err := s.store.FocusStats()
	if err != nil {
		return models.ChatContext{}, err
	}
	return models.ChatContext{
		RecentMetrics: metrics,
		RecentMoods:   moods,
		FocusStats:    &stats,
	}, nil
}

// Mood journal

// MoodEntries lists journal entries, newest first.
func (s *Service) MoodEntries(_ context.Context, limit int) ([]models.MoodEntry, error) {
	return s.store.ListMoodEntries(limit)
}

// CreateMoodEntry stores the entry, then fills in its sentiment from the
// provider. The entry is persisted before the provider call so a slow or
// failing provider never loses journal text.
func (s *Service) CreateMoodEntry(ctx context.Context, in models.InsertMoodEntry) (models.MoodEntry, error) {
	entry, err := s.store.CreateMoodEntry(in)
	if err != nil {
		return models.MoodEntry{}, err
	}

	sentiment := s.provider.RateSentiment(ctx, in.Content)
	rating := int(math.Round(sentiment.Rating))
	confidence := int(math.Round(sentiment.Confidence * 100))

	updated, err := s.store.UpdateMoodEntry(entry.ID, models.MoodEntryUpdate{
		Sentiment:           &rating,
		SentimentConfidence: &confidence,
	})
	if err != nil {
		// Entry vanished between create and update (clear-all race);
		// return what we stored.
		updated = entry
	}
	s.publish(EventMoodCreated, updated)
	return updated, nil
}

// Focus tracking

// FocusSessions lists sessions, newest first.
func (s *Service) FocusSessions(_ context.Context, limit int) ([]models.FocusSession, error) {
	return s.store.ListFocusSessions(limit)
}

// ActiveSession returns the in-progress session, or
// apperr.ErrNoActiveSession.
func (s *Service) ActiveSession(_ context.Context) (models.FocusSession, error) {
	return s.store.ActiveFocusSession()
}

// StartFocus opens a new focus session, closing any previous one.
func (s *Service) StartFocus(_ context.Context) (models.FocusSession, error) {
	sess, err := s.store.StartFocusSession()
	if err != nil {
		return models.FocusSession{}, err
	}
	s.publish(EventFocusStarted, sess)
	return sess, nil
}

// EndFocus closes the active session. Returns apperr.ErrNoActiveSession
// when nothing is running.
func (s *Service) EndFocus(_ context.Context) (models.FocusSession, error) {
	sess, err := s.store.EndFocusSession()
	if err != nil {
		return models.FocusSession{}, err
	}
	s.publish(EventFocusEnded, sess)
	return sess, nil
}

// FocusStats summarises today's sessions.
func (s *Service) FocusStats(_ context.Context) (models.FocusStats, error) {
	return s.store.FocusStats()
}

// Chat

// ChatMessages lists the conversation, oldest first.
func (s *Service) ChatMessages(_ context.Context, limit int) ([]models.ChatMessage, error) {
	return s.store.ListChatMessages(limit)
}

// SendChat stores the user message, obtains the assistant reply (with the
// wellness context attached in insight mode), stores it, and returns both.
func (s *Service) SendChat(ctx context.Context, content, mode string) (userMsg, assistantMsg models.ChatMessage, err error) {
	userMsg, err = s.store.CreateChatMessage(models.InsertChatMessage{
		Role:    models.RoleUser,
		Content: content,
		Mode:    mode,
	})
	if err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, err
	}

	var cc *models.ChatContext
	if mode == models.ModeInsight {
		built, err := s.buildContext()
		if err != nil {
			return models.ChatMessage{}, models.ChatMessage{}, err
		}
		analysis := s.provider.AnalyzeStress(ctx, built)
		built.CurrentStressScore = &analysis.Score
		cc = &built
	}

	reply := s.provider.ChatReply(ctx, content, mode, cc)

	assistantMsg, err = s.store.CreateChatMessage(models.InsertChatMessage{
		Role:    models.RoleAssistant,
		Content: reply,
		Mode:    mode,
	})
	if err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, err
	}
	return userMsg, assistantMsg, nil
}

// Mindfulness

// Activities lists all mindfulness activities.
func (s *Service) Activities(_ context.Context) ([]models.MindfulnessActivity, error) {
	return s.store.ListMindfulnessActivities()
}

// GenerateActivity asks the provider for a fresh activity in the category
// and stores it.
func (s *Service) GenerateActivity(ctx context.Context, category string) (models.MindfulnessActivity, error) {
	suggestion := s.provider.GenerateActivity(ctx, category)
	return s.store.CreateMindfulnessActivity(models.InsertMindfulnessActivity{
		Title:       suggestion.Title,
		Description: suggestion.Description,
		Duration:    suggestion.Duration,
		Category:    category,
	})
}

// CompleteActivity marks an activity as done. Returns apperr.ErrNotFound
// for unknown ids.
func (s *Service) CompleteActivity(_ context.Context, id string) (models.MindfulnessActivity, error) {
	a, err := s.store.CompleteMindfulnessActivity(id)
	if err != nil {
		return models.MindfulnessActivity{}, err
	}
	s.publish(EventActivityCompleted, a)
	return a, nil
}

// Settings

// Settings returns the settings singleton.
func (s *Service) Settings(_ context.Context) (models.UserSettings, error) {
	return s.store.Settings()
}

// UpdateSettings merges the given fields into the singleton.
func (s *Service) UpdateSettings(_ context.Context, upd models.UserSettingsUpdate) (models.UserSettings, error) {
	settings, err := s.store.UpdateSettings(upd)
	if err != nil {
		return models.UserSettings{}, err
	}
	s.publish(EventSettingsUpdated, settings)
	return settings, nil
}

// ClearAllData wipes every collection and re-seeds the sample data.
func (s *Service) ClearAllData(_ context.Context) error {
	if err := s.store.ClearAllData(); err != nil {
		return err
	}
	s.publish(EventDataCleared, nil)
	return nil
}
