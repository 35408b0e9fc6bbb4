// Package gemini implements ai.Provider against the Gemini generateContent
// REST API. Every call degrades to the documented fallback on failure, so
// callers never see a provider error.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mindflow/mindflow/internal/ai"
	"github.com/mindflow/mindflow/internal/models"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultProModel   = "gemini-2.5-pro"
	defaultFlashModel = "gemini-2.5-flash"
)

// Client talks to the Gemini API. Zero-value fields fall back to
// defaults, so tests can inject BaseURL and HTTPClient only.
type Client struct {
	APIKey     string
	BaseURL    string
	ProModel   string // sentiment rating
	FlashModel string // stress analysis, chat, activity generation
	HTTPClient *http.Client
}

var _ ai.Provider = (*Client)(nil)

// RateSentiment asks the model for a 1-5 rating and 0-1 confidence.
func (c *Client) RateSentiment(ctx context.Context, text string) ai.Sentiment {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rating":     map[string]any{"type": "number"},
			"confidence": map[string]any{"type": "number"},
		},
		"required": []string{"rating", "confidence"},
	}

	raw, err := c.generate(ctx, c.proModel(), sentimentSystemPrompt, text, schema)
	if err != nil {
		slog.Warn("sentiment analysis failed, using fallback", slog.String("error", err.Error()))
		return ai.FallbackSentiment()
	}

	var out ai.Sentiment
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("sentiment response malformed, using fallback", slog.String("error", err.Error()))
		return ai.FallbackSentiment()
	}
	return out
}

// AnalyzeStress asks the model for a full stress analysis over the
// wellness context.
func (c *Client) AnalyzeStress(ctx context.Context, cc models.ChatContext) models.StressAnalysis {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{"type": "number"},
			"level": map[string]any{
				"type": "string",
				"enum": []string{models.StressLow, models.StressModerate, models.StressHigh, models.StressVeryHigh},
			},
			"factors":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"recommendations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"trend": map[string]any{
				"type": "string",
				"enum": []string{models.TrendImproving, models.TrendStable, models.TrendWorsening},
			},
		},
		"required": []string{"score", "level", "factors", "recommendations", "trend"},
	}

	raw, err := c.generate(ctx, c.flashModel(), stressSystemPrompt, stressUserPrompt(cc), schema)
	if err != nil {
		slog.Warn("stress analysis failed, using fallback", slog.String("error", err.Error()))
		return ai.FallbackStressAnalysis()
	}

	// Score arrives as a JSON number; decode via float to tolerate
	// fractional model output.
	var parsed struct {
		Score           float64  `json:"score"`
		Level           string   `json:"level"`
		Factors         []string `json:"factors"`
		Recommendations []string `json:"recommendations"`
		Trend           string   `json:"trend"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Warn("stress response malformed, using fallback", slog.String("error", err.Error()))
		return ai.FallbackStressAnalysis()
	}
	return models.StressAnalysis{
		Score:           int(math.Round(parsed.Score)),
		Level:           parsed.Level,
		Factors:         parsed.Factors,
		Recommendations: parsed.Recommendations,
		Trend:           parsed.Trend,
	}
}

// ChatReply answers a chat message, optionally grounded in the wellness
// context for insight mode.
func (c *Client) ChatReply(ctx context.Context, message, mode string, cc *models.ChatContext) string {
	system := chatSystemPrompt
	user := message
	if mode == models.ModeInsight {
		system = insightSystemPrompt
		user = insightUserPrompt(message, cc)
	}

	reply, err := c.generate(ctx, c.flashModel(), system, user, nil)
	if err != nil {
		slog.Warn("chat reply failed, using fallback", slog.String("error", err.Error()))
		return ai.FallbackChatReply
	}
	if strings.TrimSpace(reply) == "" {
		return ai.FallbackChatReply
	}
	return reply
}

// GenerateActivity asks the model for a fresh mindfulness activity in the
// given category.
func (c *Client) GenerateActivity(ctx context.Context, category string) ai.ActivitySuggestion {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"duration":    map[string]any{"type": "number"},
		},
		"required": []string{"title", "description", "duration"},
	}

	raw, err := c.generate(ctx, c.flashModel(), activitySystemPrompt(category), "Generate a "+category+" activity", schema)
	if err != nil {
		slog.Warn("activity generation failed, using fallback",
			slog.String("category", category), slog.String("error", err.Error()))
		return ai.FallbackActivity(category)
	}

	var out ai.ActivitySuggestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("activity response malformed, using fallback",
			slog.String("category", category), slog.String("error", err.Error()))
		return ai.FallbackActivity(category)
	}
	return out
}

// Wire types for the generateContent endpoint.

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the first
// candidate's text. A non-nil schema requests strict JSON output.
func (c *Client) generate(ctx context.Context, model, system, user string, schema map[string]any) (string, error) {
	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Parts: []part{{Text: user}}}},
	}
	if schema != nil {
		reqBody.GenerationConfig = &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) proModel() string {
	if c.ProModel != "" {
		return c.ProModel
	}
	return defaultProModel
}

func (c *Client) flashModel() string {
	if c.FlashModel != "" {
		return c.FlashModel
	}
	return defaultFlashModel
}
