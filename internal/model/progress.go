package model

// AchievementCounts are the raw counters derived from an ActivityLog
type AchievementCounts struct {
	GoalsCompleted  int `json:"goals_completed"`
	ReflectionCount int `json:"reflection_count"`
	ChallengeCount  int `json:"challenge_count"`
}

// BadgeTargets are the counts at which the presentation layer awards a badge
type BadgeTargets struct {
	Goals       int `json:"goals"`
	Reflections int `json:"reflections"`
	Challenges  int `json:"challenges"`
}

// DefaultBadgeTargets returns the standard badge thresholds
func DefaultBadgeTargets() BadgeTargets {
	return BadgeTargets{
		Goals:       5,
		Reflections: 7,
		Challenges:  3,
	}
}

// SuggestedChallenges is the catalogue offered when completing a challenge.
// Any challenge text is accepted; these are suggestions.
var SuggestedChallenges = []string{
	"Learn a new programming concept today",
	"Read an article about Growth Mindset",
	"Help someone else learn something new",
	"Practice problem-solving for 30 minutes",
	"Write code documentation for better understanding",
}
