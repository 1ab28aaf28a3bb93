package request

import (
	"encoding/json"
	"io"

	"github.com/mcoot/progressjournal/internal/model"
)

// DecodeEntry reads a journal entry of the given category from body.
// Client-supplied timestamps and goal status are discarded; new goals always start in progress.
func DecodeEntry(body io.Reader, c model.Category) (model.Entry, error) {
	entry, err := model.NewEntry(c)
	if err != nil {
		return nil, err
	}
	if err := json.NewDecoder(body).Decode(entry); err != nil {
		return nil, err
	}

	entry.Stamp("")
	if goal, ok := entry.(*model.GoalEntry); ok {
		goal.Status = model.GoalInProgress
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}
