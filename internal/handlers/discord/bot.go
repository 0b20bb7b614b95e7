package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	aliasRepo "github.com/KirkDiggler/chair/internal/repositories/alias"
	"github.com/KirkDiggler/chair/internal/services/lfg"
	"github.com/bwmarrin/discordgo"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_gateway.go github.com/KirkDiggler/chair/internal/handlers/discord Gateway

const defaultRequestTimeout = 10 * time.Second

// Gateway is the connection and command registration part of the Discord
// API. *discordgo.Session satisfies it.
type Gateway interface {
	Open() error
	Close() error
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	gateway    Gateway
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	lfgService lfg.Service
	aliasRepo  aliasRepo.Repository
	config     *Config
	logger     *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the Discord session, shared with the messenger
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// RequestTimeout bounds the work done for a single gateway event
	RequestTimeout time.Duration

	LFGService lfg.Service
	AliasRepo  aliasRepo.Repository
	Logger     *slog.Logger
}

// NewSession creates a Discord session with the intents the bot needs
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.LFGService == nil {
		return nil, errors.New("lfg service cannot be nil")
	}

	if cfg.AliasRepo == nil {
		return nil, errors.New("alias repository cannot be nil")
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bot := &Bot{
		session:    cfg.Session,
		gateway:    cfg.Session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		lfgService: cfg.LFGService,
		aliasRepo:  cfg.AliasRepo,
		config:     cfg,
		logger:     logger,
	}

	cfg.Session.AddHandler(bot.handleMessageCreate)
	cfg.Session.AddHandler(bot.handleMessageDelete)
	cfg.Session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.gateway.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	commands := []CommandHandler{
		NewLFGDataCommand(b.aliasRepo, b.lfgService, b.config.RequestTimeout, b.logger),
		NewPingCommand(),
	}
	for _, cmd := range commands {
		if err := b.RegisterCommand(cmd); err != nil {
			err = fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
			if closeErr := b.gateway.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to close Discord connection: %w", closeErr))
			}
			return err
		}
	}

	b.logger.Info("bot is now running", "commands", len(b.commandIDs))
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.gateway.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.logger.Debug("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.gateway.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// An empty guild ID registers the command globally
	guildID := b.config.GuildID

	createdCmd, err := b.gateway.ApplicationCommandCreate(b.applicationID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID, "guild_id", guildID)

	return nil
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleMessageCreate feeds guild messages to the lfg service
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil || m.GuildID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.RequestTimeout)
	defer cancel()

	if err := b.lfgService.OnMessage(ctx, toMessageEvent(m.Message)); err != nil {
		b.logger.Error("failed to handle message",
			"message_id", m.ID,
			"channel_id", m.ChannelID,
			"error", err)
	}
}

// handleMessageDelete cancels the ping a deleted message started
func (b *Bot) handleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.Message == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.RequestTimeout)
	defer cancel()

	err := b.lfgService.OnMessageDelete(ctx, &lfg.MessageDeleteEvent{
		MessageID: m.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
	})
	if err != nil {
		b.logger.Error("failed to handle message delete", "message_id", m.ID, "error", err)
	}
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("failed to handle component interaction", "error", err)
		}
	}
}

// handleComponentInteraction handles join button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	event := toInteractionEvent(i)
	if _, ok := lfg.ParseJoinToken(event.CustomID); !ok {
		b.logger.Debug("ignoring unknown component", "custom_id", event.CustomID)
		return nil
	}

	// The status message is edited by the service, so the click itself only
	// needs acknowledging.
	if err := RespondWithDeferredUpdate(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge join: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.RequestTimeout)
	defer cancel()

	output, err := b.lfgService.OnInteraction(ctx, event)
	switch {
	case errors.Is(err, lfg.ErrSessionNotFound):
		return FollowupWithEphemeralMessage(s, i, "This ping has already closed.")
	case err != nil && output == nil:
		return errors.Join(err, FollowupWithEphemeralMessage(s, i, "Something went wrong joining that ping."))
	case err != nil:
		// joined, but a message update failed
		return err
	case output.AlreadyJoined:
		return FollowupWithEphemeralMessage(s, i, "You're already in!")
	}

	b.logger.Debug("user joined lfg session",
		"custom_id", event.CustomID,
		"user_id", event.User.ID,
		"count", output.Count,
		"required", output.Required)
	return nil
}
