package model

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the format of store-assigned entry timestamps (local time)
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t the way entries record it
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp parses an entry timestamp in the local zone
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// GoalStatus is the lifecycle state of a goal
type GoalStatus string

const (
	GoalInProgress GoalStatus = "In Progress"
	GoalCompleted  GoalStatus = "Completed"
)

// Entry is a single item of an activity log category
type Entry interface {
	// Category reports which sequence the entry belongs to
	Category() Category
	// Stamp sets the entry timestamp
	Stamp(ts string)
	// Validate checks the fields a caller must supply
	Validate() error
}

// GoalEntry is a learning goal
type GoalEntry struct {
	Goal      string     `json:"goal"`
	Status    GoalStatus `json:"status"`
	Timestamp string     `json:"timestamp"`
}

func (e *GoalEntry) Category() Category { return CategoryGoals }
func (e *GoalEntry) Stamp(ts string)    { e.Timestamp = ts }

func (e *GoalEntry) Validate() error {
	if strings.TrimSpace(e.Goal) == "" {
		return fmt.Errorf("%w: goal is required", ErrInvalidEntry)
	}
	switch e.Status {
	case "", GoalInProgress, GoalCompleted:
		return nil
	default:
		return fmt.Errorf("%w: unknown goal status %q", ErrInvalidEntry, e.Status)
	}
}

// ReflectionEntry is a daily reflection
type ReflectionEntry struct {
	Reflection string `json:"reflection"`
	Challenges string `json:"challenges"`
	Solutions  string `json:"solutions"`
	Timestamp  string `json:"timestamp"`
}

func (e *ReflectionEntry) Category() Category { return CategoryReflections }
func (e *ReflectionEntry) Stamp(ts string)    { e.Timestamp = ts }

func (e *ReflectionEntry) Validate() error {
	if strings.TrimSpace(e.Reflection) == "" {
		return fmt.Errorf("%w: reflection is required", ErrInvalidEntry)
	}
	return nil
}

// MistakeEntry records a setback and what was learned from it
type MistakeEntry struct {
	Mistake   string `json:"mistake"`
	Learning  string `json:"learning"`
	Timestamp string `json:"timestamp"`
}

func (e *MistakeEntry) Category() Category { return CategoryMistakes }
func (e *MistakeEntry) Stamp(ts string)    { e.Timestamp = ts }

func (e *MistakeEntry) Validate() error {
	if strings.TrimSpace(e.Mistake) == "" || strings.TrimSpace(e.Learning) == "" {
		return fmt.Errorf("%w: mistake and learning are required", ErrInvalidEntry)
	}
	return nil
}

// ChallengeEntry records a completed challenge
type ChallengeEntry struct {
	Challenge string `json:"challenge"`
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
}

func (e *ChallengeEntry) Category() Category { return CategoryChallenges }
func (e *ChallengeEntry) Stamp(ts string)    { e.Timestamp = ts }

func (e *ChallengeEntry) Validate() error {
	if strings.TrimSpace(e.Challenge) == "" || strings.TrimSpace(e.Notes) == "" {
		return fmt.Errorf("%w: challenge and notes are required", ErrInvalidEntry)
	}
	return nil
}

// ActivityLog is the per-user journal document
type ActivityLog struct {
	Goals        []GoalEntry       `json:"goals"`
	Reflections  []ReflectionEntry `json:"reflections"`
	Mistakes     []MistakeEntry    `json:"mistakes"`
	Challenges   []ChallengeEntry  `json:"challenges"`
	Achievements []string          `json:"achievements"` // reserved, never written by the store
}

// NewActivityLog returns a log with all five sequences empty
func NewActivityLog() *ActivityLog {
	return &ActivityLog{
		Goals:        []GoalEntry{},
		Reflections:  []ReflectionEntry{},
		Mistakes:     []MistakeEntry{},
		Challenges:   []ChallengeEntry{},
		Achievements: []string{},
	}
}

// Normalize replaces missing sequences with empty ones so a decoded
// partial document serializes with all five keys
func (l *ActivityLog) Normalize() {
	if l.Goals == nil {
		l.Goals = []GoalEntry{}
	}
	if l.Reflections == nil {
		l.Reflections = []ReflectionEntry{}
	}
	if l.Mistakes == nil {
		l.Mistakes = []MistakeEntry{}
	}
	if l.Challenges == nil {
		l.Challenges = []ChallengeEntry{}
	}
	if l.Achievements == nil {
		l.Achievements = []string{}
	}
}

// Append adds an entry to the end of its category
func (l *ActivityLog) Append(entry Entry) error {
	switch e := entry.(type) {
	case *GoalEntry:
		if e.Status == "" {
			e.Status = GoalInProgress
		}
		l.Goals = append(l.Goals, *e)
	case *ReflectionEntry:
		l.Reflections = append(l.Reflections, *e)
	case *MistakeEntry:
		l.Mistakes = append(l.Mistakes, *e)
	case *ChallengeEntry:
		l.Challenges = append(l.Challenges, *e)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCategory, entry)
	}
	return nil
}

// Entries returns the entries of a category in insertion order
func (l *ActivityLog) Entries(c Category) ([]Entry, error) {
	var out []Entry
	switch c {
	case CategoryGoals:
		out = make([]Entry, len(l.Goals))
		for i := range l.Goals {
			e := l.Goals[i]
			out[i] = &e
		}
	case CategoryReflections:
		out = make([]Entry, len(l.Reflections))
		for i := range l.Reflections {
			e := l.Reflections[i]
			out[i] = &e
		}
	case CategoryMistakes:
		out = make([]Entry, len(l.Mistakes))
		for i := range l.Mistakes {
			e := l.Mistakes[i]
			out[i] = &e
		}
	case CategoryChallenges:
		out = make([]Entry, len(l.Challenges))
		for i := range l.Challenges {
			e := l.Challenges[i]
			out[i] = &e
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return out, nil
}

// CompleteGoal marks the goal at index as completed.
// It reports whether the status changed.
func (l *ActivityLog) CompleteGoal(index int) (bool, error) {
	if index < 0 || index >= len(l.Goals) {
		return false, fmt.Errorf("%w: index %d, %d goals", ErrIndexOutOfRange, index, len(l.Goals))
	}
	if l.Goals[index].Status == GoalCompleted {
		return false, nil
	}
	l.Goals[index].Status = GoalCompleted
	return true, nil
}

// Len returns the total number of entries across the appendable categories
func (l *ActivityLog) Len() int {
	return len(l.Goals) + len(l.Reflections) + len(l.Mistakes) + len(l.Challenges)
}
