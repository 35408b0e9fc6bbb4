// Package models defines the domain types for MindFlow.
package models

import "time"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat modes.
const (
	ModeChat    = "chat"
	ModeInsight = "insight"
)

// Mindfulness activity categories.
const (
	CategoryBreathing  = "breathing"
	CategoryMeditation = "meditation"
	CategoryStretch    = "stretch"
	CategoryBreak      = "break"
)

// Stress levels reported by the analyzer.
const (
	StressLow      = "low"
	StressModerate = "moderate"
	StressHigh     = "high"
	StressVeryHigh = "very-high"
)

// Stress trends reported by the analyzer.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendWorsening = "worsening"
)

// User is an account record. Authentication is not wired up yet; the type
// exists so the store contract covers the full schema.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// InsertUser is the input for creating a user.
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HealthMetric is one day of synthetic device data. Immutable once created.
type HealthMetric struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Steps         int       `json:"steps"`
	HeartRate     *int      `json:"heartRate"`
	SleepHours    *int      `json:"sleepHours"`
	ActiveMinutes *int      `json:"activeMinutes"`
}

// InsertHealthMetric is the input for creating a health metric.
// A zero Date means "now".
type InsertHealthMetric struct {
	Date          time.Time `json:"date"`
	Steps         int       `json:"steps"`
	HeartRate     *int      `json:"heartRate"`
	SleepHours    *int      `json:"sleepHours"`
	ActiveMinutes *int      `json:"activeMinutes"`
}

// MoodEntry is a journal entry. Sentiment fields stay nil until the
// async analysis step fills them in.
type MoodEntry struct {
	ID                  string    `json:"id"`
	Content             string    `json:"content"`
	Sentiment           *int      `json:"sentiment"`           // 1-5
	SentimentConfidence *int      `json:"sentimentConfidence"` // 0-100
	StressLevel         *int      `json:"stressLevel"`         // 1-100
	CreatedAt           time.Time `json:"createdAt"`
}

// InsertMoodEntry is the input for creating a mood entry.
type InsertMoodEntry struct {
	Content string `json:"content"`
}

// MoodEntryUpdate is a partial update; nil fields are left untouched.
type MoodEntryUpdate struct {
	Sentiment           *int
	SentimentConfidence *int
	StressLevel         *int
}

// FocusSession is one focus-tracking interval. At most one session is
// active at any time; StartTime is immutable and EndTime is set exactly
// once, when the session closes.
type FocusSession struct {
	ID                string     `json:"id"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	FocusedMinutes    int        `json:"focusedMinutes"`
	DistractedMinutes int        `json:"distractedMinutes"`
	ActiveTab         *string    `json:"activeTab"`
	IsActive          bool       `json:"isActive"`
}

// InsertFocusSession is the input for creating a focus session.
// StartTime is always assigned by the store.
type InsertFocusSession struct {
	EndTime           *time.Time `json:"endTime"`
	FocusedMinutes    int        `json:"focusedMinutes"`
	DistractedMinutes int        `json:"distractedMinutes"`
	ActiveTab         *string    `json:"activeTab"`
	IsActive          bool       `json:"isActive"`
}

// FocusSessionUpdate is a partial update; nil fields are left untouched.
type FocusSessionUpdate struct {
	EndTime           *time.Time
	FocusedMinutes    *int
	DistractedMinutes *int
	ActiveTab         *string
	IsActive          *bool
}

// FocusStats summarises today's focus sessions.
type FocusStats struct {
	TotalFocused    int `json:"totalFocused"`
	TotalDistracted int `json:"totalDistracted"`
	SessionsToday   int `json:"sessionsToday"`
}

// ChatMessage is one turn of the AI conversation. Immutable once created;
// CreatedAt defines conversation order.
type ChatMessage struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Mode      string         `json:"mode"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

// InsertChatMessage is the input for creating a chat message.
type InsertChatMessage struct {
	Role     string         `json:"role"`
	Content  string         `json:"content"`
	Mode     string         `json:"mode"`
	Metadata map[string]any `json:"metadata"`
}

// MindfulnessActivity is a suggested wellness exercise. IsCompleted flips
// false->true exactly once; CompletedAt is set on that transition only.
type MindfulnessActivity struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"` // minutes
	Category    string     `json:"category"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

// InsertMindfulnessActivity is the input for creating an activity.
type InsertMindfulnessActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Category    string `json:"category"`
}

// MindfulnessActivityUpdate is a partial update; nil fields are left untouched.
type MindfulnessActivityUpdate struct {
	IsCompleted *bool
	CompletedAt *time.Time
}

// UserSettings is the process-wide settings singleton.
type UserSettings struct {
	ID                     string `json:"id"`
	Theme                  string `json:"theme"`
	NotificationsEnabled   bool   `json:"notificationsEnabled"`
	FocusTrackingEnabled   bool   `json:"focusTrackingEnabled"`
	AIAnalysisEnabled      bool   `json:"aiAnalysisEnabled"`
	BreakReminderInterval  int    `json:"breakReminderInterval"` // minutes
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}

// UserSettingsUpdate is a partial update; nil fields are left untouched.
type UserSettingsUpdate struct {
	Theme                  *string `json:"theme"`
	NotificationsEnabled   *bool   `json:"notificationsEnabled"`
	FocusTrackingEnabled   *bool   `json:"focusTrackingEnabled"`
	AIAnalysisEnabled      *bool   `json:"aiAnalysisEnabled"`
	BreakReminderInterval  *int    `json:"breakReminderInterval"`
	HasCompletedOnboarding *bool   `json:"hasCompletedOnboarding"`
}

// TrendPoint is one day in the weekly trends projection.
type TrendPoint struct {
	Day    string `json:"day"`
	Stress int    `json:"stress"`
	Steps  int    `json:"steps"`
	Sleep  *int   `json:"sleep"`
}

// StressAnalysis is the analyzer's verdict over recent wellness data.
type StressAnalysis struct {
	Score           int      `json:"score"` // 0-100
	Level           string   `json:"level"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
	Trend           string   `json:"trend"`
}

// ChatContext carries the wellness snapshot handed to the AI provider for
// insight-mode replies and stress analysis.
type ChatContext struct {
	RecentMetrics      []HealthMetric `json:"recentMetrics,omitempty"`
	RecentMoods        []MoodEntry    `json:"recentMoods,omitempty"`
	CurrentStressScore *int           `json:"currentStressScore,omitempty"`
	FocusStats         *FocusStats    `json:"focusStats,omitempty"`
}
