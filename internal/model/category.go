package model

import "fmt"

// Category names one of the mutable sequences of an ActivityLog
type Category string

const (
	CategoryGoals       Category = "goals"
	CategoryReflections Category = "reflections"
	CategoryMistakes    Category = "mistakes"
	CategoryChallenges  Category = "challenges"
)

// Categories lists every appendable category in document order
var Categories = []Category{
	CategoryGoals,
	CategoryReflections,
	CategoryMistakes,
	CategoryChallenges,
}

// ParseCategory validates a category name
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// NewEntry returns an empty entry of the concrete type for a category,
// suitable as a JSON decode target
func NewEntry(c Category) (Entry, error) {
	switch c {
	case CategoryGoals:
		return &GoalEntry{}, nil
	case CategoryReflections:
		return &ReflectionEntry{}, nil
	case CategoryMistakes:
		return &MistakeEntry{}, nil
	case CategoryChallenges:
		return &ChallengeEntry{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
}
