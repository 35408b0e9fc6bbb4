package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mindflow/mindflow/internal/models"
)

// CreateHealthMetricRequest is the request body for recording a metric.
type CreateHealthMetricRequest struct {
	Date          time.Time `json:"date"`
	Steps         int       `json:"steps"`
	HeartRate     *int      `json:"heartRate"`
	SleepHours    *int      `json:"sleepHours"`
	ActiveMinutes *int      `json:"activeMinutes"`
}

// Validate validates the metric payload.
func (r CreateHealthMetricRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Steps, validation.Min(0)),
		validation.Field(&r.HeartRate, validation.Min(1)),
		validation.Field(&r.SleepHours, validation.Min(0)),
		validation.Field(&r.ActiveMinutes, validation.Min(0)),
	)
}

// CreateMoodEntryRequest is the request body for a journal entry.
type CreateMoodEntryRequest struct {
	Content string `json:"content"`
}

// Validate validates the journal payload.
func (r CreateMoodEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("Please write something about how you're feeling")),
	)
}

// ChatSendRequest is the request body for sending a chat message.
type ChatSendRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
}

// Validate validates the chat payload.
func (r ChatSendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Mode, validation.Required,
			validation.In(models.ModeChat, models.ModeInsight)),
	)
}

// ChatSendResponse pairs the stored user message with the assistant reply.
type ChatSendResponse struct {
	UserMessage      models.ChatMessage `json:"userMessage"`
	AssistantMessage models.ChatMessage `json:"assistantMessage"`
}

// GenerateActivityRequest is the request body for generating an activity.
type GenerateActivityRequest struct {
	Category string `json:"category"`
}

// Validate validates the generation payload.
func (r GenerateActivityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required,
			validation.In(models.CategoryBreathing, models.CategoryMeditation,
				models.CategoryStretch, models.CategoryBreak)),
	)
}

// UpdateSettingsRequest is the request body for a settings merge. Absent
// fields leave the stored values untouched.
type UpdateSettingsRequest models.UserSettingsUpdate

// Validate validates the settings payload.
func (r UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		// Min alone skips zero values, so reject 0 explicitly.
		validation.Field(&r.BreakReminderInterval, validation.NilOrNotEmpty, validation.Min(1)),
	)
}

// ClearDataResponse acknowledges a full data reset.
type ClearDataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
