package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/progressjournal/internal/model"
)

// DecodeActivityLog parses a stored activity log document.
// Decode failures wrap model.ErrCorruptDocument.
func DecodeActivityLog(data []byte) (*model.ActivityLog, error) {
	var log model.ActivityLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptDocument, err)
	}
	log.Normalize()
	return &log, nil
}

// EncodeActivityLog serializes an activity log document
func EncodeActivityLog(log *model.ActivityLog) ([]byte, error) {
	log.Normalize()
	return json.Marshal(log)
}

// DecodeCredential parses a stored credential document.
// Decode failures wrap model.ErrCorruptDocument.
func DecodeCredential(data []byte) (*model.Credential, error) {
	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptDocument, err)
	}
	return &cred, nil
}
