package ai

import "github.com/mindflow/mindflow/internal/models"

// FallbackChatReply is returned when the provider cannot answer a chat
// message.
const FallbackChatReply = "I'm having trouble connecting right now. Please try again in a moment."

// FallbackSentiment is the neutral rating used when sentiment analysis
// fails.
func FallbackSentiment() Sentiment {
	return Sentiment{Rating: 3, Confidence: 0.5}
}

// FallbackStressAnalysis is the moderate/stable result used when stress
// analysis fails.
func FallbackStressAnalysis() models.StressAnalysis {
	return models.StressAnalysis{
		Score:           35,
		Level:           models.StressModerate,
		Factors:         []string{"Insufficient data for complete analysis"},
		Recommendations: []string{"Continue tracking your wellness metrics for better insights"},
		Trend:           models.TrendStable,
	}
}

var fallbackActivities = map[string]ActivitySuggestion{
	models.CategoryBreathing: {
		Title:       "4-7-8 Breathing Technique",
		Description: "Sit comfortably with your back straight. Inhale quietly through your nose for 4 counts, hold your breath for 7 counts, then exhale completely through your mouth for 8 counts. Repeat this cycle 3-4 times.",
		Duration:    5,
	},
	models.CategoryMeditation: {
		Title:       "Body Scan Meditation",
		Description: "Lie down or sit comfortably. Close your eyes and bring awareness to each part of your body, starting from your toes and moving up to your head. Notice any sensations without judgment.",
		Duration:    10,
	},
	models.CategoryStretch: {
		Title:       "Desk Stretches",
		Description: "Stand up and stretch your arms overhead, then gently bend side to side. Roll your shoulders backward 10 times. Stretch your neck by tilting your head to each side.",
		Duration:    3,
	},
	models.CategoryBreak: {
		Title:       "Mindful Tea Break",
		Description: "Make your favorite beverage. As you drink, focus completely on the experience - the warmth, aroma, and taste. Let your mind rest from work.",
		Duration:    5,
	},
}

// FallbackActivity is the fixed per-category template used when activity
// generation fails. Unknown categories fall back to breathing.
func FallbackActivity(category string) ActivitySuggestion {
	if a, ok := fallbackActivities[category]; ok {
		return a
	}
	return fallbackActivities[models.CategoryBreathing]
}
