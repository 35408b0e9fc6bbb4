// Package testutil provides shared test helpers: fresh stores and a
// scriptable AI provider.
package testutil

import (
	"context"
	"testing"

	"github.com/mindflow/mindflow/internal/ai"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/store"
	"github.com/mindflow/mindflow/internal/wellness"
)

// StubProvider is a scriptable ai.Provider. Nil functions answer with the
// documented fallback, which matches a provider that always fails.
type StubProvider struct {
	SentimentFn func(text string) ai.Sentiment
	StressFn    func(c models.ChatContext) models.StressAnalysis
	ChatFn      func(message, mode string, c *models.ChatContext) string
	ActivityFn  func(category string) ai.ActivitySuggestion
}

var _ ai.Provider = (*StubProvider)(nil)

func (p *StubProvider) RateSentiment(_ context.Context, text string) ai.Sentiment {
	if p.SentimentFn != nil {
		return p.SentimentFn(text)
	}
	return ai.FallbackSentiment()
}

func (p *StubProvider) AnalyzeStress(_ context.Context, c models.ChatContext) models.StressAnalysis {
	if p.StressFn != nil {
		return p.StressFn(c)
	}
	return ai.FallbackStressAnalysis()
}

func (p *StubProvider) ChatReply(_ context.Context, message, mode string, c *models.ChatContext) string {
	if p.ChatFn != nil {
		return p.ChatFn(message, mode, c)
	}
	return ai.FallbackChatReply
}

func (p *StubProvider) GenerateActivity(_ context.Context, category string) ai.ActivitySuggestion {
	if p.ActivityFn != nil {
		return p.ActivityFn(category)
	}
	return ai.FallbackActivity(category)
}

// NewStore creates a fresh seeded in-memory store.
func NewStore(t *testing.T) *store.MemStore {
	t.Helper()
	return store.NewMemStore()
}

// NewService wires a fresh store, a stub provider, and a wellness service
// with events disabled.
func NewService(t *testing.T) (*wellness.Service, *store.MemStore, *StubProvider) {
	t.Helper()
	st := store.NewMemStore()
	provider := &StubProvider{}
	return wellness.NewService(st, provider, nil), st, provider
}
