package lfg

//go:generate mockgen -package=mocks -destination=mocks/mock_messenger.go github.com/KirkDiggler/chair/internal/services/lfg Messenger

import "context"

// Service defines the looking-for-group session lifecycle
type Service interface {
	// OnMessage handles a newly created chat message
	OnMessage(ctx context.Context, event *MessageEvent) error

	// OnMessageDelete cancels the session a deleted message started, if any
	OnMessageDelete(ctx context.Context, event *MessageDeleteEvent) error

	// OnInteraction handles a click on a session's join button
	OnInteraction(ctx context.Context, event *InteractionEvent) (*AddParticipantOutput, error)

	// CreateSession starts tracking a ping if the message qualifies
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// AddParticipant records a joiner and refreshes or completes the session
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)

	// ExpireSession tears a session down. Expiring a session that is already gone is a no-op.
	ExpireSession(ctx context.Context, input *ExpireSessionInput) error

	// ListSessions returns a read-only snapshot of the live sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// Shutdown expires every live session and stops all timers
	Shutdown(ctx context.Context) error
}

// Messenger is the chat transport the service renders through
type Messenger interface {
	// SendMessage posts a message, optionally as a reply, and returns its ID
	SendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error)

	// EditMessage replaces the content, embed and buttons of a message
	EditMessage(ctx context.Context, input *EditMessageInput) error

	// DeleteMessage deletes a message
	DeleteMessage(ctx context.Context, input *DeleteMessageInput) error
}
