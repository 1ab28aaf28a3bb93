package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Me:
		o.printMe(v)
	case CreatedEntry:
		o.printCreatedEntry(v)
	case CategoryList:
		o.printCategory(v.Category, v.Entries)
	case Journal:
		o.printJournal(v)
	case Progress:
		o.printProgress(v)
	case Catalog:
		o.printCatalog(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult is the register/login response
type AuthResult struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Me describes the current account
type Me struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Exists    bool      `json:"exists"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Entry holds the fields of any journal entry; unused fields are empty
type Entry struct {
	Goal       string `json:"goal,omitempty"`
	Status     string `json:"status,omitempty"`
	Reflection string `json:"reflection,omitempty"`
	Challenges string `json:"challenges,omitempty"`
	Solutions  string `json:"solutions,omitempty"`
	Mistake    string `json:"mistake,omitempty"`
	Learning   string `json:"learning,omitempty"`
	Challenge  string `json:"challenge,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// CreatedEntry is the append response
type CreatedEntry struct {
	Category string `json:"category"`
	Entry    Entry  `json:"entry"`
}

// CategoryList is one category of the journal
type CategoryList struct {
	Category string  `json:"category"`
	Entries  []Entry `json:"entries"`
}

// Journal is the whole activity log
type Journal struct {
	Goals        []Entry  `json:"goals"`
	Reflections  []Entry  `json:"reflections"`
	Mistakes     []Entry  `json:"mistakes"`
	Challenges   []Entry  `json:"challenges"`
	Achievements []string `json:"achievements"`
}

// Progress is the achievement report
type Progress struct {
	Counts struct {
		GoalsCompleted  int `json:"goals_completed"`
		ReflectionCount int `json:"reflection_count"`
		ChallengeCount  int `json:"challenge_count"`
	} `json:"counts"`
	Targets struct {
		Goals       int `json:"goals"`
		Reflections int `json:"reflections"`
		Challenges  int `json:"challenges"`
	} `json:"targets"`
}

// Catalog is the suggested challenge list
type Catalog struct {
	Challenges []string `json:"challenges"`
	Featured   string   `json:"featured"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Fprintf(o.w, "User: %s <%s>\n", a.Username, a.Email)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Local().Format(time.DateTime))
}

func (o *Output) printMe(m Me) {
	fmt.Fprintf(o.w, "User: %s <%s>\n", m.Username, m.Email)
	fmt.Fprintf(o.w, "Session expires: %s\n", m.ExpiresAt.Local().Format(time.DateTime))
}

func (o *Output) printCreatedEntry(c CreatedEntry) {
	fmt.Fprintf(o.w, "Recorded in %s:\n", c.Category)
	o.printEntry(c.Category, -1, c.Entry)
}

func (o *Output) printJournal(j Journal) {
	o.printCategory("goals", j.Goals)
	o.printCategory("reflections", j.Reflections)
	o.printCategory("mistakes", j.Mistakes)
	o.printCategory("challenges", j.Challenges)
}

func (o *Output) printCategory(category string, entries []Entry) {
	fmt.Fprintf(o.w, "%s (%d):\n", category, len(entries))
	for i, e := range entries {
		o.printEntry(category, i, e)
	}
}

func (o *Output) printEntry(category string, index int, e Entry) {
	prefix := "  -"
	if index >= 0 && category == "goals" {
		prefix = fmt.Sprintf("  [%d]", index)
	}

	switch category {
	case "goals":
		fmt.Fprintf(o.w, "%s %s (%s) %s\n", prefix, e.Goal, e.Status, e.Timestamp)
	case "reflections":
		fmt.Fprintf(o.w, "%s %s %s\n", prefix, e.Timestamp, e.Reflection)
		if e.Challenges != "" {
			fmt.Fprintf(o.w, "      challenges: %s\n", e.Challenges)
		}
		if e.Solutions != "" {
			fmt.Fprintf(o.w, "      solutions: %s\n", e.Solutions)
		}
	case "mistakes":
		fmt.Fprintf(o.w, "%s %s %s\n", prefix, e.Timestamp, e.Mistake)
		fmt.Fprintf(o.w, "      learning: %s\n", e.Learning)
	case "challenges":
		fmt.Fprintf(o.w, "%s %s %s\n", prefix, e.Timestamp, e.Challenge)
		fmt.Fprintf(o.w, "      notes: %s\n", e.Notes)
	}
}

func (o *Output) printProgress(p Progress) {
	o.printCounter("Goal Achiever", "goals completed", p.Counts.GoalsCompleted, p.Targets.Goals)
	o.printCounter("Reflection Master", "reflections", p.Counts.ReflectionCount, p.Targets.Reflections)
	o.printCounter("Challenge Master", "challenges completed", p.Counts.ChallengeCount, p.Targets.Challenges)
}

func (o *Output) printCounter(badge, label string, count, target int) {
	earned := ""
	if target > 0 && count >= target {
		earned = " [badge earned]"
	}
	fmt.Fprintf(o.w, "%s: %d/%d %s%s\n", badge, count, target, label, earned)
}

func (o *Output) printCatalog(c Catalog) {
	fmt.Fprintln(o.w, "Suggested challenges:")
	for i, ch := range c.Challenges {
		fmt.Fprintf(o.w, "  %d. %s\n", i+1, ch)
	}
	if c.Featured != "" {
		fmt.Fprintf(o.w, "Today's pick: %s\n", c.Featured)
	}
}
