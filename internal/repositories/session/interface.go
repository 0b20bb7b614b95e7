package session

import (
	"context"

	"github.com/KirkDiggler/chair/internal/models"
)

// Repository defines the registry of live looking-for-group sessions.
// Sessions are indexed by ID and by the message that triggered them; every
// read returns a copy the caller is free to keep.
type Repository interface {
	// Insert adds a session under both of its indexes
	Insert(ctx context.Context, input *InsertInput) error

	// Get retrieves a session by ID
	Get(ctx context.Context, input *GetInput) (*models.Session, error)

	// GetByMessage retrieves a session by the ID of its originating message
	GetByMessage(ctx context.Context, input *GetByMessageInput) (*models.Session, error)

	// AppendParticipant adds a joiner and returns the updated session
	AppendParticipant(ctx context.Context, input *AppendParticipantInput) (*models.Session, error)

	// SetReplyMessage records the ID of the session's status message
	SetReplyMessage(ctx context.Context, input *SetReplyMessageInput) error

	// Remove deletes a session from both indexes
	Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)

	// List returns every live session ordered by expiry
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}
