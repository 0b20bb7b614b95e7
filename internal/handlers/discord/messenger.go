package discord

//go:generate mockgen -package=mocks -destination=mocks/mock_channel_client.go github.com/KirkDiggler/chair/internal/handlers/discord ChannelClient

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/chair/internal/services/lfg"
	"github.com/bwmarrin/discordgo"
)

// ChannelClient is the part of the Discord REST API the messenger uses.
// *discordgo.Session satisfies it.
type ChannelClient interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Messenger implements lfg.Messenger over the Discord REST API
type Messenger struct {
	client ChannelClient
}

// NewMessenger creates a new Discord messenger
func NewMessenger(client ChannelClient) (*Messenger, error) {
	if client == nil {
		return nil, errors.New("channel client cannot be nil")
	}

	return &Messenger{client: client}, nil
}

// SendMessage posts a message, as a reply when ReplyToMessageID is set
func (m *Messenger) SendMessage(ctx context.Context, input *lfg.SendMessageInput) (*lfg.SendMessageOutput, error) {
	if input == nil || input.Message == nil {
		return nil, errors.New("message cannot be nil")
	}

	sent, err := m.client.ChannelMessageSendComplex(input.ChannelID, renderMessageSend(input), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", input.ChannelID, err)
	}

	return &lfg.SendMessageOutput{MessageID: sent.ID}, nil
}

// EditMessage replaces a message's content, embed and buttons
func (m *Messenger) EditMessage(ctx context.Context, input *lfg.EditMessageInput) error {
	if input == nil || input.Message == nil {
		return errors.New("message cannot be nil")
	}

	if _, err := m.client.ChannelMessageEditComplex(renderMessageEdit(input), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message %s: %w", input.MessageID, err)
	}
	return nil
}

// DeleteMessage deletes a message, recording the reason in the audit log
func (m *Messenger) DeleteMessage(ctx context.Context, input *lfg.DeleteMessageInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	options := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if input.Reason != "" {
		options = append(options, discordgo.WithAuditLogReason(input.Reason))
	}

	if err := m.client.ChannelMessageDelete(input.ChannelID, input.MessageID, options...); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", input.MessageID, err)
	}
	return nil
}
