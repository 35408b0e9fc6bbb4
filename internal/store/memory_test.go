package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mindflow/mindflow/internal/apperr"
	"github.com/mindflow/mindflow/internal/models"
)

// fakeClock pins the store's notion of now to a mutable instant.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*MemStore, *fakeClock) {
	t.Helper()
	s := NewMemStore()
	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)}
	s.now = clock.now
	return s, clock
}

func countByCategory(t *testing.T, activities []models.MindfulnessActivity) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	for _, a := range activities {
		counts[a.Category]++
	}
	return counts
}

func TestSeededData(t *testing.T) {
	s := NewMemStore()

	metrics, err := s.ListHealthMetrics(0)
	if err != nil {
		t.Fatalf("ListHealthMetrics: %v", err)
	}
	if len(metrics) != 7 {
		t.Fatalf("seeded metrics = %d, want 7", len(metrics))
	}
	for i := 1; i < len(metrics); i++ {
		if metrics[i].Date.After(metrics[i-1].Date) {
			t.Errorf("metrics not newest first at index %d", i)
		}
	}
	for _, m := range metrics {
		if m.Steps < 5000 || m.Steps >= 13000 {
			t.Errorf("seeded steps = %d, want [5000,13000)", m.Steps)
		}
		if m.HeartRate == nil || m.SleepHours == nil || m.ActiveMinutes == nil {
			t.Errorf("seeded metric has nil optional fields: %+v", m)
		}
	}

	activities, err := s.ListMindfulnessActivities()
	if err != nil {
		t.Fatalf("ListMindfulnessActivities: %v", err)
	}
	if len(activities) != 6 {
		t.Fatalf("seeded activities = %d, want 6", len(activities))
	}
	counts := countByCategory(t, activities)
	want := map[string]int{
		models.CategoryBreathing:  1,
		models.CategoryMeditation: 2,
		models.CategoryStretch:    2,
		models.CategoryBreak:      1,
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("category %s count = %d, want %d", cat, counts[cat], n)
		}
	}
	for _, a := range activities {
		if a.IsCompleted || a.CompletedAt != nil {
			t.Errorf("seeded activity %q should not be completed", a.Title)
		}
	}
}

func TestClearAllDataReseeds(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.CreateMoodEntry(models.InsertMoodEntry{Content: "busy day"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateChatMessage(models.InsertChatMessage{Role: models.RoleUser, Content: "hi", Mode: models.ModeChat}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StartFocusSession(); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearAllData(); err != nil {
		t.Fatalf("ClearAllData: %v", err)
	}

	moods, _ := s.ListMoodEntries(0)
	if len(moods) != 0 {
		t.Errorf("moods after clear = %d, want 0", len(moods))
	}
	messages, _ := s.ListChatMessages(0)
	if len(messages) != 0 {
		t.Errorf("messages after clear = %d, want 0", len(messages))
	}
	sessions, _ := s.ListFocusSessions(0)
	if len(sessions) != 0 {
		t.Errorf("sessions after clear = %d, want 0", len(sessions))
	}

	metrics, _ := s.ListHealthMetrics(0)
	if len(metrics) != 7 {
		t.Errorf("metrics after clear = %d, want 7", len(metrics))
	}
	activities, _ := s.ListMindfulnessActivities()
	if len(activities) != 6 {
		t.Errorf("activities after clear = %d, want 6", len(activities))
	}
	counts := countByCategory(t, activities)
	if counts[models.CategoryMeditation] != 2 || counts[models.CategoryStretch] != 2 ||
		counts[models.CategoryBreathing] != 1 || counts[models.CategoryBreak] != 1 {
		t.Errorf("reseeded category counts = %v", counts)
	}
}

func TestClearAllDataKeepsSettings(t *testing.T) {
	s, _ := newTestStore(t)

	theme := "light"
	if _, err := s.UpdateSettings(models.UserSettingsUpdate{Theme: &theme}); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAllData(); err != nil {
		t.Fatal(err)
	}
	settings, _ := s.Settings()
	if settings.Theme != "light" {
		t.Errorf("theme after clear = %q, want light", settings.Theme)
	}
}

func TestStartFocusSessionSingleActive(t *testing.T) {
	s, clock := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.StartFocusSession(); err != nil {
			t.Fatalf("StartFocusSession %d: %v", i, err)
		}
		clock.advance(time.Minute)
	}

	sessions, err := s.ListFocusSessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(sessions))
	}

	active := 0
	for _, sess := range sessions {
		if sess.IsActive {
			active++
			if sess.EndTime != nil {
				t.Error("active session has EndTime set")
			}
		} else if sess.EndTime == nil {
			t.Error("closed session has nil EndTime")
		}
	}
	if active != 1 {
		t.Errorf("active sessions = %d, want 1", active)
	}
}

func TestActiveFocusSession(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.ActiveFocusSession(); !errors.Is(err, apperr.ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}

	started, err := s.StartFocusSession()
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.ActiveFocusSession()
	if err != nil {
		t.Fatalf("ActiveFocusSession: %v", err)
	}
	if got.ID != started.ID {
		t.Errorf("active id = %s, want %s", got.ID, started.ID)
	}
}

func TestEndFocusSessionNoActive(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.EndFocusSession(); !errors.Is(err, apperr.ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
	sessions, _ := s.ListFocusSessions(0)
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0 (nothing mutated)", len(sessions))
	}
}

func TestEndFocusSessionZeroElapsed(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.StartFocusSession(); err != nil {
		t.Fatal(err)
	}
	sess, err := s.EndFocusSession()
	if err != nil {
		t.Fatalf("EndFocusSession: %v", err)
	}
	if sess.FocusedMinutes != 0 || sess.DistractedMinutes != 0 {
		t.Errorf("minutes = %d/%d, want 0/0", sess.FocusedMinutes, sess.DistractedMinutes)
	}
	if sess.IsActive {
		t.Error("session still active after end")
	}
	if sess.EndTime == nil {
		t.Error("EndTime not set")
	}
}

func TestEndFocusSessionSplitsElapsed(t *testing.T) {
	s, clock := newTestStore(t)

	if _, err := s.StartFocusSession(); err != nil {
		t.Fatal(err)
	}
	clock.advance(100 * time.Minute)

	sess, err := s.EndFocusSession()
	if err != nil {
		t.Fatal(err)
	}
	if sess.FocusedMinutes != 70 {
		t.Errorf("focused = %d, want 70", sess.FocusedMinutes)
	}
	if sess.DistractedMinutes != 30 {
		t.Errorf("distracted = %d, want 30", sess.DistractedMinutes)
	}
}

func TestFocusStatsMidnightBoundary(t *testing.T) {
	s, clock := newTestStore(t)

	// A long session that started and ended yesterday.
	clock.t = time.Date(2026, 3, 9, 18, 0, 0, 0, time.Local)
	if _, err := s.StartFocusSession(); err != nil {
		t.Fatal(err)
	}
	clock.advance(60 * time.Minute)
	if _, err := s.EndFocusSession(); err != nil {
		t.Fatal(err)
	}

	// A short session today.
	clock.t = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	if _, err := s.StartFocusSession(); err != nil {
		t.Fatal(err)
	}
	clock.advance(10 * time.Minute)
	if _, err := s.EndFocusSession(); err != nil {
		t.Fatal(err)
	}

	stats, err := s.FocusStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.SessionsToday != 1 {
		t.Errorf("sessionsToday = %d, want 1", stats.SessionsToday)
	}
	if stats.TotalFocused != 7 || stats.TotalDistracted != 3 {
		t.Errorf("totals = %d/%d, want 7/3", stats.TotalFocused, stats.TotalDistracted)
	}
}

func TestMoodEntryRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	entry, err := s.CreateMoodEntry(models.InsertMoodEntry{Content: "I feel okay"})
	if err != nil {
		t.Fatal(err)
	}
	if entry.Sentiment != nil || entry.SentimentConfidence != nil || entry.StressLevel != nil {
		t.Errorf("new entry has non-nil analysis fields: %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	rating, confidence := 4, 80
	updated, err := s.UpdateMoodEntry(entry.ID, models.MoodEntryUpdate{
		Sentiment:           &rating,
		SentimentConfidence: &confidence,
	})
	if err != nil {
		t.Fatalf("UpdateMoodEntry: %v", err)
	}
	if updated.Sentiment == nil || *updated.Sentiment != 4 {
		t.Errorf("sentiment = %v, want 4", updated.Sentiment)
	}
	if updated.SentimentConfidence == nil || *updated.SentimentConfidence != 80 {
		t.Errorf("confidence = %v, want 80", updated.SentimentConfidence)
	}
	if updated.Content != "I feel okay" {
		t.Errorf("content changed to %q", updated.Content)
	}
	if !updated.CreatedAt.Equal(entry.CreatedAt) {
		t.Error("CreatedAt changed by update")
	}
}

func TestUpdateMoodEntryNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	rating := 4
	if _, err := s.UpdateMoodEntry("missing", models.MoodEntryUpdate{Sentiment: &rating}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListMoodEntriesNewestFirst(t *testing.T) {
	s, clock := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.CreateMoodEntry(models.InsertMoodEntry{Content: fmt.Sprintf("entry-%d", i)}); err != nil {
			t.Fatal(err)
		}
		clock.advance(time.Minute)
	}

	entries, err := s.ListMoodEntries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Content != "entry-2" || entries[2].Content != "entry-0" {
		t.Errorf("order = [%s, %s, %s], want newest first",
			entries[0].Content, entries[1].Content, entries[2].Content)
	}
}

func TestListHealthMetricsDefaultLimit(t *testing.T) {
	s, clock := newTestStore(t)
	// Re-seed under the fake clock so the seeded dates sort behind the
	// metrics created below.
	if err := s.ClearAllData(); err != nil {
		t.Fatal(err)
	}

	// 7 seeded + 40 more.
	for i := 0; i < 40; i++ {
		clock.advance(time.Hour)
		if _, err := s.CreateHealthMetric(models.InsertHealthMetric{Steps: i}); err != nil {
			t.Fatal(err)
		}
	}

	metrics, err := s.ListHealthMetrics(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(metrics) != DefaultMetricsLimit {
		t.Errorf("metrics = %d, want %d", len(metrics), DefaultMetricsLimit)
	}
	if metrics[0].Steps != 39 {
		t.Errorf("first metric steps = %d, want newest (39)", metrics[0].Steps)
	}
}

func TestChatMessagesTruncateFront(t *testing.T) {
	s, clock := newTestStore(t)

	for i := 0; i < 150; i++ {
		if _, err := s.CreateChatMessage(models.InsertChatMessage{
			Role:    models.RoleUser,
			Content: fmt.Sprintf("msg-%d", i),
			Mode:    models.ModeChat,
		}); err != nil {
			t.Fatal(err)
		}
		clock.advance(time.Second)
	}

	messages, err := s.ListChatMessages(100)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 100 {
		t.Fatalf("messages = %d, want 100", len(messages))
	}
	if messages[0].Content != "msg-50" {
		t.Errorf("first = %q, want msg-50 (oldest kept)", messages[0].Content)
	}
	if messages[99].Content != "msg-149" {
		t.Errorf("last = %q, want msg-149 (most recent)", messages[99].Content)
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Fatalf("messages not in ascending creation order at index %d", i)
		}
	}
}

func TestWeeklyTrends(t *testing.T) {
	s, clock := newTestStore(t)
	// Re-seed under the fake clock so trend days are deterministic.
	if err := s.ClearAllData(); err != nil {
		t.Fatal(err)
	}

	trends, err := s.WeeklyTrends()
	if err != nil {
		t.Fatal(err)
	}
	if len(trends) != 7 {
		t.Fatalf("trends = %d, want 7", len(trends))
	}

	// Oldest first: the first point is 6 days before the clock.
	wantFirst := clock.t.AddDate(0, 0, -6).Format("Mon")
	if trends[0].Day != wantFirst {
		t.Errorf("first day = %q, want %q", trends[0].Day, wantFirst)
	}
	wantLast := clock.t.Format("Mon")
	if trends[6].Day != wantLast {
		t.Errorf("last day = %q, want %q", trends[6].Day, wantLast)
	}
	for _, p := range trends {
		if p.Stress < 20 || p.Stress >= 80 {
			t.Errorf("stress = %d, want [20,80)", p.Stress)
		}
	}
}

func TestCompleteMindfulnessActivityOnce(t *testing.T) {
	s, clock := newTestStore(t)

	activities, _ := s.ListMindfulnessActivities()
	id := activities[0].ID

	first, err := s.CompleteMindfulnessActivity(id)
	if err != nil {
		t.Fatal(err)
	}
	if !first.IsCompleted || first.CompletedAt == nil {
		t.Fatalf("activity not completed: %+v", first)
	}

	clock.advance(time.Hour)
	second, err := s.CompleteMindfulnessActivity(id)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("CompletedAt changed on repeat completion: %v != %v", second.CompletedAt, first.CompletedAt)
	}
}

func TestCompleteMindfulnessActivityNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.CompleteMindfulnessActivity("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSettingsDefaultsAndMerge(t *testing.T) {
	s, _ := newTestStore(t)

	settings, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Theme != "dark" || !settings.NotificationsEnabled || !settings.FocusTrackingEnabled ||
		!settings.AIAnalysisEnabled || settings.BreakReminderInterval != 120 || settings.HasCompletedOnboarding {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	theme := "light"
	updated, err := s.UpdateSettings(models.UserSettingsUpdate{Theme: &theme})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Theme != "light" {
		t.Errorf("theme = %q, want light", updated.Theme)
	}
	if !updated.NotificationsEnabled || !updated.FocusTrackingEnabled || !updated.AIAnalysisEnabled ||
		updated.BreakReminderInterval != 120 || updated.HasCompletedOnboarding {
		t.Errorf("merge touched unrelated fields: %+v", updated)
	}
	if updated.ID != settings.ID {
		t.Error("settings id changed by merge")
	}
}

func TestCreateUserAndLookup(t *testing.T) {
	s, _ := newTestStore(t)

	u, err := s.CreateUser(models.InsertUser{Username: "ada", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == "" {
		t.Fatal("user id not assigned")
	}

	byID, err := s.GetUser(u.ID)
	if err != nil || byID.Username != "ada" {
		t.Errorf("GetUser = %+v, %v", byID, err)
	}
	byName, err := s.GetUserByUsername("ada")
	if err != nil || byName.ID != u.ID {
		t.Errorf("GetUserByUsername = %+v, %v", byName, err)
	}
	if _, err := s.GetUserByUsername("nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateFocusSessionNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	active := true
	if _, err := s.UpdateFocusSession("missing", models.FocusSessionUpdate{IsActive: &active}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
