package messaging

import "context"

// Service supplies the user-facing text for looking-for-group messages
type Service interface {
	// GetExpiredMessage returns the text for a ping that timed out
	GetExpiredMessage(ctx context.Context, input *GetExpiredMessageInput) (*GetExpiredMessageOutput, error)

	// GetCancelledMessage returns the text for a ping its author backed out of
	GetCancelledMessage(ctx context.Context, input *GetCancelledMessageInput) (*GetCancelledMessageOutput, error)

	// GetReadyMessage returns the text announcing a full group
	GetReadyMessage(ctx context.Context, input *GetReadyMessageInput) (*GetReadyMessageOutput, error)

	// GetUsageMessage returns instructions for a ping that is missing its ratio
	GetUsageMessage(ctx context.Context, input *GetUsageMessageInput) (*GetUsageMessageOutput, error)
}
