// Package ai defines the generative-AI capability consumed by the core.
package ai

import (
	"context"

	"github.com/mindflow/mindflow/internal/models"
)

// Sentiment is a 1-5 star rating with a 0-1 confidence score.
type Sentiment struct {
	Rating     float64 `json:"rating"`
	Confidence float64 `json:"confidence"`
}

// ActivitySuggestion is a generated mindfulness activity.
type ActivitySuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"` // minutes
}

// Provider supplies the four AI capabilities. Every method returns a
// usable value: implementations catch provider failures (timeouts,
// malformed responses, upstream errors) and substitute the documented
// fallback instead of surfacing an error.
type Provider interface {
	// RateSentiment rates the sentiment of free-form journal text.
	RateSentiment(ctx context.Context, text string) Sentiment
	// AnalyzeStress scores the user's stress from recent wellness data.
	AnalyzeStress(ctx context.Context, c models.ChatContext) models.StressAnalysis
	// ChatReply answers a chat message. In insight mode c carries the
	// wellness snapshot; in plain chat mode c is nil.
	ChatReply(ctx context.Context, message, mode string, c *models.ChatContext) string
	// GenerateActivity produces a mindfulness activity for the category.
	GenerateActivity(ctx context.Context, category string) ActivitySuggestion
}
