package messaging

import "math/rand"

// Config holds configuration for the messaging service
type Config struct {
	// Seed makes message selection deterministic when non-zero
	Seed int64

	// Rand overrides the random source entirely
	Rand *rand.Rand
}

// GetExpiredMessageInput contains parameters for an expired ping message
type GetExpiredMessageInput struct{}

// GetExpiredMessageOutput contains the expired ping message
type GetExpiredMessageOutput struct {
	Title   string
	Message string

	// Version identifies the flavor table the message was drawn from
	Version int
}

// GetCancelledMessageInput contains parameters for a cancelled ping message
type GetCancelledMessageInput struct {
	// AuthorID is the Discord user who backed out
	AuthorID string
}

// GetCancelledMessageOutput contains the cancelled ping message
type GetCancelledMessageOutput struct {
	Title   string
	Message string
}

// GetReadyMessageInput contains parameters for a ready announcement
type GetReadyMessageInput struct {
	Count    int
	Required int
}

// GetReadyMessageOutput contains the ready announcement
type GetReadyMessageOutput struct {
	Title   string
	Message string
}

// GetUsageMessageInput contains parameters for the usage reply
type GetUsageMessageInput struct {
	// FacadeRoleID is the alias role the user pinged
	FacadeRoleID string
}

// GetUsageMessageOutput contains the usage reply
type GetUsageMessageOutput struct {
	Title   string
	Message string
}
