package store

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/mindflow/mindflow/internal/models"
)

// defaultActivities are the six activities present after every reset:
// one breathing, two meditation, two stretch, one break.
var defaultActivities = []models.InsertMindfulnessActivity{
	{
		Title:       "Morning Breathing Exercise",
		Description: "Start your day with 5 minutes of deep breathing. Inhale for 4 counts, hold for 4, exhale for 4, and hold for 4. This calms your nervous system and sets a peaceful tone.",
		Duration:    5,
		Category:    models.CategoryBreathing,
	},
	{
		Title:       "Guided Body Scan",
		Description: "Lie down and mentally scan your body from toes to head. Notice any tension or sensations without trying to change them. This builds body awareness and releases stress.",
		Duration:    10,
		Category:    models.CategoryMeditation,
	},
	{
		Title:       "Neck and Shoulder Stretch",
		Description: "Gently roll your shoulders backward 10 times, then forward 10 times. Tilt your head to each side, holding for 10 seconds. This releases computer-induced tension.",
		Duration:    3,
		Category:    models.CategoryStretch,
	},
	{
		Title:       "Mindful Coffee Break",
		Description: "Step away from your desk and make a warm beverage. Focus entirely on the process and sensations - the aroma, warmth, and taste. No screens, just presence.",
		Duration:    5,
		Category:    models.CategoryBreak,
	},
	{
		Title:       "Walking Meditation",
		Description: "Take a slow, mindful walk. Notice each step, the sensation of your feet touching the ground, your breath, and your surroundings. Let thoughts pass without engaging.",
		Duration:    15,
		Category:    models.CategoryMeditation,
	},
	{
		Title:       "Progressive Muscle Relaxation",
		Description: "Tense and then relax each muscle group for 5 seconds, starting with your toes and moving up. This reduces physical tension and promotes deep relaxation.",
		Duration:    8,
		Category:    models.CategoryStretch,
	},
}

// seedInitialData populates a trailing 7-day window of synthetic health
// metrics and the default mindfulness activities. Callers must hold the
// write lock (or own the store exclusively, as NewMemStore does).
func (s *MemStore) seedInitialData() {
	now := s.now()
	for i := 6; i >= 0; i-- {
		heartRate := 60 + rand.IntN(20)
		sleepHours := 6 + rand.IntN(3)
		activeMinutes := 20 + rand.IntN(60)

		m := models.HealthMetric{
			ID:            uuid.New().String(),
			Date:          now.AddDate(0, 0, -i),
			Steps:         5000 + rand.IntN(8000),
			HeartRate:     &heartRate,
			SleepHours:    &sleepHours,
			ActiveMinutes: &activeMinutes,
		}
		s.metrics.put(m.ID, m)
	}

	for _, in := range defaultActivities {
		s.createActivity(in)
	}
}
