package session

import "github.com/KirkDiggler/chair/internal/models"

// InsertInput contains the session to add
type InsertInput struct {
	Session *models.Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	SessionID string
}

// GetByMessageInput contains parameters for retrieving a session by originating message
type GetByMessageInput struct {
	MessageID string
}

// AppendParticipantInput contains parameters for adding a joiner
type AppendParticipantInput struct {
	SessionID string
	UserID    string
}

// SetReplyMessageInput contains parameters for recording a status message
type SetReplyMessageInput struct {
	SessionID string
	MessageID string
}

// RemoveInput contains parameters for removing a session
type RemoveInput struct {
	SessionID string
}

// RemoveOutput contains the removed session, if there was one
type RemoveOutput struct {
	// Session is the session as it was when removed, nil if it was already gone
	Session *models.Session
}

// ListInput contains parameters for listing sessions
type ListInput struct {
	// GuildID limits the listing to one guild when set
	GuildID string
}

// ListOutput contains the listed sessions
type ListOutput struct {
	Sessions []*models.Session
}
