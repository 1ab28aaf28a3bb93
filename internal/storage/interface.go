package storage

import (
	"context"

	"github.com/mcoot/progressjournal/internal/model"
)

// Storage defines the document persistence used by the record store.
// Each username owns one credential document and one activity log document;
// every write replaces the whole document.
type Storage interface {
	// Credential operations
	GetCredential(ctx context.Context, username string) (*model.Credential, error)
	// CreateCredential stores cred only if no credential exists for its username,
	// returning model.ErrAlreadyExists otherwise
	CreateCredential(ctx context.Context, cred *model.Credential) error
	CredentialExists(ctx context.Context, username string) (bool, error)

	// Activity log operations
	// GetActivityLog returns model.ErrLogNotFound when no document exists and an
	// error wrapping model.ErrCorruptDocument when the stored bytes do not decode
	GetActivityLog(ctx context.Context, username string) (*model.ActivityLog, error)
	SaveActivityLog(ctx context.Context, username string, log *model.ActivityLog) error
}
