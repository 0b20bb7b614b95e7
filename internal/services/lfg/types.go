package lfg

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/chair/internal/common/clock"
	"github.com/KirkDiggler/chair/internal/common/uuid"
	"github.com/KirkDiggler/chair/internal/models"
	aliasRepo "github.com/KirkDiggler/chair/internal/repositories/alias"
	sessionRepo "github.com/KirkDiggler/chair/internal/repositories/session"
	"github.com/KirkDiggler/chair/internal/services/expiry"
	"github.com/KirkDiggler/chair/internal/services/messaging"
)

// ExpiryStrategy selects what a teardown does to the visible messages
type ExpiryStrategy int

const (
	// ExpiryDeleteOriginal deletes the triggering message; used when the group fills
	ExpiryDeleteOriginal ExpiryStrategy = iota

	// ExpiryStale marks the status message as expired
	ExpiryStale

	// ExpiryCancelled marks the status message as cancelled by its author
	ExpiryCancelled

	// ExpiryDoNothing removes the session without touching any message
	ExpiryDoNothing
)

// String returns the strategy name used in logs
func (e ExpiryStrategy) String() string {
	switch e {
	case ExpiryDeleteOriginal:
		return "delete_original"
	case ExpiryStale:
		return "stale"
	case ExpiryCancelled:
		return "cancelled"
	case ExpiryDoNothing:
		return "do_nothing"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// Valid reports whether e is one of the defined strategies
func (e ExpiryStrategy) Valid() bool {
	return e >= ExpiryDeleteOriginal && e <= ExpiryDoNothing
}

// SkipReason explains why a message didn't become a session
type SkipReason string

const (
	// SkipReasonNone means a session was created
	SkipReasonNone SkipReason = ""

	// SkipReasonBotAuthor means the message came from a bot or system account
	SkipReasonBotAuthor SkipReason = "bot_author"

	// SkipReasonNoTrigger means no configured alias appeared in the message
	SkipReasonNoTrigger SkipReason = "no_trigger"

	// SkipReasonMissingRatio means the alias was pinged without an "n/m" ratio
	SkipReasonMissingRatio SkipReason = "missing_ratio"

	// SkipReasonAlreadyFull means the ratio was already satisfied
	SkipReasonAlreadyFull SkipReason = "already_full"
)

// Config holds configuration for the lfg service
type Config struct {
	// SessionTTL is how long a ping stays open, 30 minutes when zero
	SessionTTL time.Duration

	// RequestTimeout bounds transport calls made from timer callbacks, 10 seconds when zero
	RequestTimeout time.Duration

	// ShutdownConcurrency caps parallel teardowns during Shutdown, 4 when zero
	ShutdownConcurrency int

	// Repository dependencies
	SessionRepo sessionRepo.Repository
	AliasRepo   aliasRepo.Repository

	// Service dependencies
	Scheduler        *expiry.Scheduler
	Messenger        Messenger
	MessagingService messaging.Service
	Clock            clock.Clock
	IDGenerator      uuid.Generator
	Logger           *slog.Logger
}

// User is a chat account as seen by the service
type User struct {
	ID     string
	Bot    bool
	System bool
}

// MessageEvent is a newly created chat message
type MessageEvent struct {
	MessageID string
	GuildID   string
	ChannelID string
	Content   string
	Author    User

	// Mentions contains the users mentioned in the message
	Mentions []User
}

// MessageDeleteEvent is a deleted chat message
type MessageDeleteEvent struct {
	MessageID string
	GuildID   string
	ChannelID string
}

// InteractionEvent is a click on a message component
type InteractionEvent struct {
	CustomID  string
	GuildID   string
	ChannelID string
	User      User
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	Message *MessageEvent
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// SessionID is set when a session was created
	SessionID string

	// Skipped explains why no session was created
	Skipped SkipReason
}

// AddParticipantInput contains parameters for joining a session
type AddParticipantInput struct {
	SessionID string
	UserID    string
}

// AddParticipantOutput contains the result of joining a session
type AddParticipantOutput struct {
	// Joined is true when the user was added
	Joined bool

	// AlreadyJoined is true when the user was already counted
	AlreadyJoined bool

	// Ready is true when this join filled the group
	Ready bool

	Count    int
	Required int
}

// ExpireSessionInput contains parameters for tearing a session down
type ExpireSessionInput struct {
	SessionID string
	Strategy  ExpiryStrategy
}

// ListSessionsInput contains parameters for listing sessions
type ListSessionsInput struct {
	// GuildID limits the listing to one guild when set
	GuildID string
}

// ListSessionsOutput contains the live sessions
type ListSessionsOutput struct {
	Sessions []*models.Session
}

// Embed is a transport-neutral rich embed
type Embed struct {
	Title       string
	Description string
	Color       int
}

// Message is everything a rendered message shows
type Message struct {
	Content string
	Embed   *Embed

	// JoinToken is the join button's custom ID; no button is shown when empty
	JoinToken string
	JoinLabel string

	// AllowMentions lets the user and role mentions in Content notify.
	// Everything else is sent with mentions suppressed.
	AllowMentions bool
}

// SendMessageInput contains parameters for posting a message
type SendMessageInput struct {
	GuildID   string
	ChannelID string

	// ReplyToMessageID makes the message a reply when set
	ReplyToMessageID string

	Message *Message
}

// SendMessageOutput contains the posted message's ID
type SendMessageOutput struct {
	MessageID string
}

// EditMessageInput contains parameters for editing a message
type EditMessageInput struct {
	ChannelID string
	MessageID string
	Message   *Message
}

// DeleteMessageInput contains parameters for deleting a message
type DeleteMessageInput struct {
	ChannelID string
	MessageID string

	// Reason is recorded in the audit log
	Reason string
}
