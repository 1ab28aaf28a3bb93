package progress

import "github.com/mcoot/progressjournal/internal/model"

// AchievementCounts derives the raw achievement counters from a log.
// A nil log counts as empty.
func AchievementCounts(log *model.ActivityLog) model.AchievementCounts {
	var counts model.AchievementCounts
	if log == nil {
		return counts
	}
	for _, g := range log.Goals {
		if g.Status == model.GoalCompleted {
			counts.GoalsCompleted++
		}
	}
	counts.ReflectionCount = len(log.Reflections)
	counts.ChallengeCount = len(log.Challenges)
	return counts
}
