package store

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindflow/mindflow/internal/apperr"
	"github.com/mindflow/mindflow/internal/models"
)

// MemStore is the in-memory Store implementation. A single RWMutex guards
// all collections, so compound operations such as StartFocusSession hold
// the at-most-one-active invariant under concurrent handlers.
//
// All state is process-local and lost on restart.
type MemStore struct {
	mu  sync.RWMutex
	now func() time.Time

	users      *collection[models.User]
	metrics    *collection[models.HealthMetric]
	moods      *collection[models.MoodEntry]
	sessions   *collection[models.FocusSession]
	messages   *collection[models.ChatMessage]
	activities *collection[models.MindfulnessActivity]
	settings   models.UserSettings
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates a store pre-seeded with a trailing week of sample
// health metrics and the default mindfulness activities.
func NewMemStore() *MemStore {
	s := &MemStore{
		now:        time.Now,
		users:      newCollection[models.User](),
		metrics:    newCollection[models.HealthMetric](),
		moods:      newCollection[models.MoodEntry](),
		sessions:   newCollection[models.FocusSession](),
		messages:   newCollection[models.ChatMessage](),
		activities: newCollection[models.MindfulnessActivity](),
		settings: models.UserSettings{
			ID:                     uuid.New().String(),
			Theme:                  "dark",
			NotificationsEnabled:   true,
			FocusTrackingEnabled:   true,
			AIAnalysisEnabled:      true,
			BreakReminderInterval:  120,
			HasCompletedOnboarding: false,
		},
	}
	s.seedInitialData()
	return s
}

// Users

// GetUser returns the user with the given id.
func (s *MemStore) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

// GetUserByUsername returns the user with the given username.
func (s *MemStore) GetUserByUsername(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users.values() {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

// CreateUser stores a new user under a fresh id.
func (s *MemStore) CreateUser(in models.InsertUser) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{
		ID:       uuid.New().String(),
		Username: in.Username,
		Password: in.Password,
	}
	s.users.put(u.ID, u)
	return u, nil
}

// Health metrics

// CreateHealthMetric stores a new metric. A zero date defaults to now.
func (s *MemStore) CreateHealthMetric(in models.InsertHealthMetric) (models.HealthMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	m := models.HealthMetric{
		ID:            uuid.New().String(),
		Date:          date,
		Steps:         in.Steps,
		HeartRate:     in.HeartRate,
		SleepHours:    in.SleepHours,
		ActiveMinutes: in.ActiveMinutes,
	}
	s.metrics.put(m.ID, m)
	return m, nil
}

// ListHealthMetrics returns metrics newest first, truncated to limit
// (default 30).
func (s *MemStore) ListHealthMetrics(limit int) ([]models.HealthMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMetrics(limit), nil
}

func (s *MemStore) listMetrics(limit int) []models.HealthMetric {
	if limit <= 0 {
		limit = DefaultMetricsLimit
	}
	out := s.metrics.values()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// WeeklyTrends projects the last 7 metrics, oldest first, into per-day
// trend points. The stress figure is a random placeholder in [20,80);
// it is not derived from mood data.
func (s *MemStore) WeeklyTrends() ([]models.TrendPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := s.listMetrics(7)
	out := make([]models.TrendPoint, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		out = append(out, models.TrendPoint{
			Day:    m.Date.Format("Mon"),
			Stress: 20 + rand.IntN(60),
			Steps:  m.Steps,
			Sleep:  m.SleepHours,
		})
	}
	return out, nil
}

// Mood entries

// CreateMoodEntry stores a new entry with nil sentiment fields; the
// analysis step fills them in later via UpdateMoodEntry.
func (s *MemStore) CreateMoodEntry(in models.InsertMoodEntry) (models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := models.MoodEntry{
		ID:        uuid.New().String(),
		Content:   in.Content,
		CreatedAt: s.now(),
	}
	s.moods.put(e.ID, e)
	return e, nil
}

// ListMoodEntries returns entries newest first, truncated to limit
// (default 50).
func (s *MemStore) ListMoodEntries(limit int) ([]models.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMoods(limit), nil
}

func (s *MemStore) listMoods(limit int) []models.MoodEntry {
	if limit <= 0 {
		limit = DefaultMoodsLimit
	}
	out := s.moods.values()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UpdateMoodEntry merges the given fields into the stored entry.
func (s *MemStore) UpdateMoodEntry(id string, upd models.MoodEntryUpdate) (models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.moods.get(id)
	if !ok {
		return models.MoodEntry{}, apperr.ErrNotFound
	}
	if upd.Sentiment != nil {
		e.Sentiment = upd.Sentiment
	}
	if upd.SentimentConfidence != nil {
		e.SentimentConfidence = upd.SentimentConfidence
	}
	if upd.StressLevel != nil {
		e.StressLevel = upd.StressLevel
	}
	s.moods.put(id, e)
	return e, nil
}

// Focus sessions

// CreateFocusSession stores a new session. StartTime is always assigned
// by the store.
func (s *MemStore) CreateFocusSession(in models.InsertFocusSession) (models.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSession(in), nil
}

func (s *MemStore) createSession(in models.InsertFocusSession) models.FocusSession {
	sess := models.FocusSession{
		ID:                uuid.New().String(),
		StartTime:         s.now(),
		EndTime:           in.EndTime,
		FocusedMinutes:    in.FocusedMinutes,
		DistractedMinutes: in.DistractedMinutes,
		ActiveTab:         in.ActiveTab,
		IsActive:          in.IsActive,
	}
	s.sessions.put(sess.ID, sess)
	return sess
}

// ListFocusSessions returns sessions newest first by start time,
// truncated to limit (default 20).
func (s *MemStore) ListFocusSessions(limit int) ([]models.FocusSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultSessionsLimit
	}
	out := s.sessions.values()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdateFocusSession merges the given fields into the stored session.
func (s *MemStore) UpdateFocusSession(id string, upd models.FocusSessionUpdate) (models.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.get(id)
	if !ok {
		return models.FocusSession{}, apperr.ErrNotFound
	}
	sess = mergeSession(sess, upd)
	s.sessions.put(id, sess)
	return sess, nil
}

func mergeSession(sess models.FocusSession, upd models.FocusSessionUpdate) models.FocusSession {
	if upd.EndTime != nil {
		sess.EndTime = upd.EndTime
	}
	if upd.FocusedMinutes != nil {
		sess.FocusedMinutes = *upd.FocusedMinutes
	}
	if upd.DistractedMinutes != nil {
		sess.DistractedMinutes = *upd.DistractedMinutes
	}
	if upd.ActiveTab != nil {
		sess.ActiveTab = upd.ActiveTab
	}
	if upd.IsActive != nil {
		sess.IsActive = *upd.IsActive
	}
	return sess
}

// ActiveFocusSession returns the single in-progress session.
func (s *MemStore) ActiveFocusSession() (models.FocusSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSession()
}

func (s *MemStore) activeSession() (models.FocusSession, error) {
	for _, sess := range s.sessions.values() {
		if sess.IsActive {
			return sess, nil
		}
	}
	return models.FocusSession{}, apperr.ErrNoActiveSession
}

// StartFocusSession closes any active session (IsActive=false,
// EndTime=now) and opens a fresh one under the same lock acquisition.
func (s *MemStore) StartFocusSession() (models.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, err := s.activeSession(); err == nil {
		now := s.now()
		prev.IsActive = false
		prev.EndTime = &now
		s.sessions.put(prev.ID, prev)
	}

	tab := "MindFlow"
	return s.createSession(models.InsertFocusSession{
		IsActive:  true,
		ActiveTab: &tab,
	}), nil
}

// EndFocusSession closes the active session, splitting the elapsed whole
// minutes 70/30 into focused/distracted time. The split is a fixed
// heuristic, not measured activity.
func (s *MemStore) EndFocusSession() (models.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeSession()
	if err != nil {
		return models.FocusSession{}, err
	}

	now := s.now()
	elapsed := int(now.Sub(sess.StartTime) / time.Minute)
	focused := elapsed * 7 / 10

	sess.IsActive = false
	sess.EndTime = &now
	sess.FocusedMinutes = focused
	sess.DistractedMinutes = elapsed - focused
	s.sessions.put(sess.ID, sess)
	return sess, nil
}

// FocusStats sums focused/distracted minutes over sessions that started
// since local midnight.
func (s *MemStore) FocusStats() (models.FocusStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focusStats(), nil
}

func (s *MemStore) focusStats() models.FocusStats {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats models.FocusStats
	for _, sess := range s.sessions.values() {
		if sess.StartTime.Before(midnight) {
			continue
		}
		stats.TotalFocused += sess.FocusedMinutes
		stats.TotalDistracted += sess.DistractedMinutes
		stats.SessionsToday++
	}
	return stats
}

// Chat messages

// CreateChatMessage stores a new message with CreatedAt=now.
func (s *MemStore) CreateChatMessage(in models.InsertChatMessage) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      in.Role,
		Content:   in.Content,
		Mode:      in.Mode,
		Metadata:  in.Metadata,
		CreatedAt: s.now(),
	}
	s.messages.put(m.ID, m)
	return m, nil
}

// ListChatMessages returns messages oldest first, keeping only the most
// recent limit entries (default 100). Truncating from the front preserves
// conversational order while capping history size.
func (s *MemStore) ListChatMessages(limit int) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMessages(limit), nil
}

func (s *MemStore) listMessages(limit int) []models.ChatMessage {
	if limit <= 0 {
		limit = DefaultMessagesLimit
	}
	out := s.messages.values()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Mindfulness activities

// CreateMindfulnessActivity stores a new, not-yet-completed activity.
func (s *MemStore) CreateMindfulnessActivity(in models.InsertMindfulnessActivity) (models.MindfulnessActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createActivity(in), nil
}

func (s *MemStore) createActivity(in models.InsertMindfulnessActivity) models.MindfulnessActivity {
	a := models.MindfulnessActivity{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		Category:    in.Category,
	}
	s.activities.put(a.ID, a)
	return a
}

// ListMindfulnessActivities returns all activities in insertion order.
func (s *MemStore) ListMindfulnessActivities() ([]models.MindfulnessActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.values(), nil
}

// UpdateMindfulnessActivity merges the given fields into the stored
// activity.
func (s *MemStore) UpdateMindfulnessActivity(id string, upd models.MindfulnessActivityUpdate) (models.MindfulnessActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities.get(id)
	if !ok {
		return models.MindfulnessActivity{}, apperr.ErrNotFound
	}
	if upd.IsCompleted != nil {
		a.IsCompleted = *upd.IsCompleted
	}
	if upd.CompletedAt != nil {
		a.CompletedAt = upd.CompletedAt
	}
	s.activities.put(id, a)
	return a, nil
}

// CompleteMindfulnessActivity marks the activity as completed. Repeated
// calls leave the original CompletedAt untouched.
func (s *MemStore) CompleteMindfulnessActivity(id string) (models.MindfulnessActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities.get(id)
	if !ok {
		return models.MindfulnessActivity{}, apperr.ErrNotFound
	}
	if !a.IsCompleted {
		now := s.now()
		a.IsCompleted = true
		a.CompletedAt = &now
		s.activities.put(id, a)
	}
	return a, nil
}

// Settings

// Settings returns the settings singleton.
func (s *MemStore) Settings() (models.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// UpdateSettings merges the given fields into the singleton and returns
// the full record.
func (s *MemStore) UpdateSettings(upd models.UserSettingsUpdate) (models.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if upd.Theme != nil {
		s.settings.Theme = *upd.Theme
	}
	if upd.NotificationsEnabled != nil {
		s.settings.NotificationsEnabled = *upd.NotificationsEnabled
	}
	if upd.FocusTrackingEnabled != nil {
		s.settings.FocusTrackingEnabled = *upd.FocusTrackingEnabled
	}
	if upd.AIAnalysisEnabled != nil {
		s.settings.AIAnalysisEnabled = *upd.AIAnalysisEnabled
	}
	if upd.BreakReminderInterval != nil {
		s.settings.BreakReminderInterval = *upd.BreakReminderInterval
	}
	if upd.HasCompletedOnboarding != nil {
		s.settings.HasCompletedOnboarding = *upd.HasCompletedOnboarding
	}
	return s.settings, nil
}

// ClearAllData wipes every collection and re-seeds the sample data so
// the app never presents a fully empty state after a reset. Settings are
// not touched.
func (s *MemStore) ClearAllData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.clear()
	s.moods.clear()
	s.sessions.clear()
	s.messages.clear()
	s.activities.clear()

	s.seedInitialData()
	return nil
}
