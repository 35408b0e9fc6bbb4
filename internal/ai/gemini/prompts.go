package gemini

import (
	"fmt"
	"strings"

	"github.com/mindflow/mindflow/internal/models"
)

const sentimentSystemPrompt = `You are a sentiment analysis expert.
Analyze the sentiment of the text and provide a rating
from 1 to 5 stars and a confidence score between 0 and 1.
Respond with JSON in this format:
{'rating': number, 'confidence': number}`

const stressSystemPrompt = `You are a wellness and stress analysis expert.
Analyze the provided health metrics, mood data, and focus patterns to calculate a stress score.
Provide a comprehensive stress analysis with actionable recommendations.
Respond with JSON matching this exact schema.`

const chatSystemPrompt = `You are a friendly, knowledgeable wellness AI assistant.
Help users with stress management, wellness tips, mental health guidance, and healthy lifestyle recommendations.
Be supportive, empathetic, and provide evidence-based advice.
Keep responses concise but helpful (2-3 paragraphs max).`

const insightSystemPrompt = `You are a wellness AI assistant analyzing user health data.
Provide clear, actionable insights based on their metrics, mood, and focus patterns.
Be empathetic, supportive, and specific in your recommendations.`

func activitySystemPrompt(category string) string {
	return fmt.Sprintf(`You are a mindfulness and wellness expert.
Generate a specific, actionable mindfulness activity for the category: %s.
Provide a title, detailed description with step-by-step guidance, and duration in minutes.
Make it practical and easy to follow.`, category)
}

// stressUserPrompt renders the wellness snapshot handed to the stress
// analyzer.
func stressUserPrompt(c models.ChatContext) string {
	var b strings.Builder
	b.WriteString("Analyze this user's wellness data:\n\nRecent Health Metrics:\n")

	if len(c.RecentMetrics) == 0 {
		b.WriteString("No data available\n")
	}
	for _, m := range c.RecentMetrics {
		fmt.Fprintf(&b, "- Date: %s, Steps: %d, Heart Rate: %s, Sleep: %sh\n",
			m.Date.Format("2006-01-02"), m.Steps, intOrNA(m.HeartRate), intOrNA(m.SleepHours))
	}

	b.WriteString("\nRecent Mood Entries:\n")
	if len(c.RecentMoods) == 0 {
		b.WriteString("No mood data\n")
	}
	for _, m := range c.RecentMoods {
		fmt.Fprintf(&b, "- %s: Sentiment %s/5, %q\n",
			m.CreatedAt.Format("2006-01-02"), intOrNA(m.Sentiment), truncate(m.Content, 100))
	}

	b.WriteString("\nFocus Stats:\n")
	var focused, distracted int
	if c.FocusStats != nil {
		focused = c.FocusStats.TotalFocused
		distracted = c.FocusStats.TotalDistracted
	}
	fmt.Fprintf(&b, "- Focused time: %d minutes\n- Distracted time: %d minutes\n\n", focused, distracted)

	b.WriteString("Provide a stress score (0-100), level classification, contributing factors, recommendations, and trend.")
	return b.String()
}

// insightUserPrompt prepends the wellness snapshot to the user's question
// for insight-mode chat.
func insightUserPrompt(message string, c *models.ChatContext) string {
	if c == nil {
		return message
	}

	var latest *models.HealthMetric
	if len(c.RecentMetrics) > 0 {
		latest = &c.RecentMetrics[0]
	}
	var latestMood *models.MoodEntry
	if len(c.RecentMoods) > 0 {
		latestMood = &c.RecentMoods[0]
	}

	steps, sleep, heartRate := "N/A", "N/A", "N/A"
	if latest != nil {
		steps = fmt.Sprintf("%d", latest.Steps)
		sleep = intOrNA(latest.SleepHours)
		heartRate = intOrNA(latest.HeartRate)
	}
	mood := "N/A"
	if latestMood != nil {
		mood = intOrNA(latestMood.Sentiment)
	}
	var focused, distracted int
	if c.FocusStats != nil {
		focused = c.FocusStats.TotalFocused
		distracted = c.FocusStats.TotalDistracted
	}
	stress := "N/A"
	if c.CurrentStressScore != nil {
		stress = fmt.Sprintf("%d", *c.CurrentStressScore)
	}

	return fmt.Sprintf(`User's Recent Data:
- Steps: %s
- Sleep: %s hours
- Heart Rate: %s bpm
- Recent Mood: %s/5
- Focus Time: %d min focused, %d min distracted
- Current Stress Score: %s

User Question: %s`, steps, sleep, heartRate, mood, focused, distracted, stress, message)
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
