package lfg

import (
	"context"
	"errors"
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
	"github.com/KirkDiggler/chair/internal/trigger"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSessionTTL          = 30 * time.Minute
	defaultRequestTimeout      = 10 * time.Second
	defaultShutdownConcurrency = 4

	deleteOriginalReason = "LFG Ping expired"
)

// service implements the Service interface
type service struct {
	sessionTTL          time.Duration
	requestTimeout      time.Duration
	shutdownConcurrency int

	sessionRepo      sessionRepo.Repository
	aliasRepo        aliasRepo.Repository
	scheduler        *expiry.Scheduler
	messenger        Messenger
	messagingService messaging.Service
	clock            clock.Clock
	idGenerator      uuid.Generator
	logger           *slog.Logger

	// every mutation of a session happens while holding its ID here
	seq *sequencer
}

// New creates a new lfg service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.AliasRepo == nil {
		return nil, ErrNilAliasRepo
	}
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
	}
	if cfg.MessagingService == nil {
		return nil, ErrNilMessagingService
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.IDGenerator == nil {
		return nil, ErrNilIDGenerator
	}

	svc := &service{
		sessionTTL:          cfg.SessionTTL,
		requestTimeout:      cfg.RequestTimeout,
		shutdownConcurrency: cfg.ShutdownConcurrency,
		sessionRepo:         cfg.SessionRepo,
		aliasRepo:           cfg.AliasRepo,
		scheduler:           cfg.Scheduler,
		messenger:           cfg.Messenger,
		messagingService:    cfg.MessagingService,
		clock:               cfg.Clock,
		idGenerator:         cfg.IDGenerator,
		logger:              cfg.Logger,
		seq:                 newSequencer(),
	}

	if svc.sessionTTL <= 0 {
		svc.sessionTTL = defaultSessionTTL
	}
	if svc.requestTimeout <= 0 {
		svc.requestTimeout = defaultRequestTimeout
	}
	if svc.shutdownConcurrency <= 0 {
		svc.shutdownConcurrency = defaultShutdownConcurrency
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc, nil
}

// OnMessage handles a newly created chat message
func (s *service) OnMessage(ctx context.Context, event *MessageEvent) error {
	output, err := s.CreateSession(ctx, &CreateSessionInput{
		Message: event,
	})
	if err != nil {
		return err
	}

	if output.SessionID != "" {
		s.logger.Info("lfg session created",
			"session_id", output.SessionID,
			"guild_id", event.GuildID,
			"channel_id", event.ChannelID,
			"author_id", event.Author.ID)
	} else if output.Skipped != SkipReasonNoTrigger && output.Skipped != SkipReasonBotAuthor {
		s.logger.Debug("lfg ping skipped",
			"message_id", event.MessageID,
			"reason", string(output.Skipped))
	}

	return nil
}

// OnMessageDelete cancels the session started by a deleted message
func (s *service) OnMessageDelete(ctx context.Context, event *MessageDeleteEvent) error {
	if event == nil || event.MessageID == "" {
		return nil
	}

	session, err := s.sessionRepo.GetByMessage(ctx, &sessionRepo.GetByMessageInput{
		MessageID: event.MessageID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	return s.ExpireSession(ctx, &ExpireSessionInput{
		SessionID: session.ID,
		Strategy:  ExpiryCancelled,
	})
}

// OnInteraction handles a click on a join button
func (s *service) OnInteraction(ctx context.Context, event *InteractionEvent) (*AddParticipantOutput, error) {
	if event == nil {
		return nil, ErrNotJoinToken
	}

	sessionID, ok := ParseJoinToken(event.CustomID)
	if !ok {
		return nil, ErrNotJoinToken
	}

	return s.AddParticipant(ctx, &AddParticipantInput{
		SessionID: sessionID,
		UserID:    event.User.ID,
	})
}

// CreateSession starts tracking a ping if the message qualifies
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.Message == nil {
		return nil, errors.New("message cannot be nil")
	}
	msg := input.Message

	if msg.Author.Bot || msg.Author.System {
		return &CreateSessionOutput{Skipped: SkipReasonBotAuthor}, nil
	}

	aliases, err := s.aliasRepo.ListAliases(ctx, &aliasRepo.ListAliasesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}

	match, ok := trigger.Parse(msg.Content, aliases.Aliases)
	if !ok {
		return &CreateSessionOutput{Skipped: SkipReasonNoTrigger}, nil
	}

	if !match.HasRatio() {
		if err := s.sendUsage(ctx, msg, match); err != nil {
			return nil, err
		}
		return &CreateSessionOutput{Skipped: SkipReasonMissingRatio}, nil
	}

	added := addedParticipants(msg)
	initial := max(1+len(added), int(match.Numerator))
	if initial >= int(match.Denominator) {
		return &CreateSessionOutput{Skipped: SkipReasonAlreadyFull}, nil
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:                     s.idGenerator.NewID(),
		GuildID:                msg.GuildID,
		ChannelID:              msg.ChannelID,
		OriginalMessageID:      msg.MessageID,
		AuthorID:               msg.Author.ID,
		FacadeRoleID:           match.FacadeRoleID,
		ActualRoleID:           match.ActualRoleID,
		Participants:           []string{},
		AddedParticipants:      added,
		ExcludedParticipants:   []string{},
		InterestedParticipants: []string{},
		InitialNumber:          uint8(initial),
		RequiredNumber:         match.Denominator,
		CreatedAt:              now,
		Expiry:                 now.Add(s.sessionTTL),
	}

	unlock := s.seq.Lock(session.ID)
	defer unlock()

	if err := s.sessionRepo.Insert(ctx, &sessionRepo.InsertInput{
		Session: session,
	}); err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	s.scheduler.Schedule(session.ID, session.Expiry.Sub(now), func() {
		s.onExpiryTimer(session.ID)
	})

	// A session whose status message failed to post still expires on its
	// timer, so it is left registered.
	if err := s.renderStatus(ctx, session); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{SessionID: session.ID}, nil
}

// AddParticipant records a joiner and refreshes or completes the session
func (s *service) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrSessionNotFound
	}
	if input.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	unlock := s.seq.Lock(input.SessionID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.HasMember(input.UserID) {
		return &AddParticipantOutput{
			AlreadyJoined: true,
			Count:         session.Count(),
			Required:      int(session.RequiredNumber),
		}, nil
	}

	session, err = s.sessionRepo.AppendParticipant(ctx, &sessionRepo.AppendParticipantInput{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	output := &AddParticipantOutput{
		Joined:   true,
		Count:    session.Count(),
		Required: int(session.RequiredNumber),
	}

	if !session.IsFull() {
		if err := s.renderStatus(ctx, session); err != nil {
			return output, err
		}
		return output, nil
	}

	output.Ready = true
	s.logger.Info("lfg session filled",
		"session_id", session.ID,
		"count", output.Count,
		"required", output.Required)

	if err := s.expireLocked(ctx, session.ID, ExpiryDeleteOriginal); err != nil {
		return output, err
	}
	if err := s.announceReady(ctx, session); err != nil {
		return output, err
	}

	return output, nil
}

// ExpireSession tears a session down
func (s *service) ExpireSession(ctx context.Context, input *ExpireSessionInput) error {
	if input == nil || input.SessionID == "" {
		return nil
	}
	if !input.Strategy.Valid() {
		return ErrInvalidStrategy
	}

	unlock := s.seq.Lock(input.SessionID)
	defer unlock()

	return s.expireLocked(ctx, input.SessionID, input.Strategy)
}

// ListSessions returns a snapshot of the live sessions
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		input = &ListSessionsInput{}
	}

	output, err := s.sessionRepo.List(ctx, &sessionRepo.ListInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{Sessions: output.Sessions}, nil
}

// Shutdown marks every live session expired and stops all timers
func (s *service) Shutdown(ctx context.Context) error {
	defer s.scheduler.Stop()

	output, err := s.sessionRepo.List(ctx, &sessionRepo.ListInput{})
	if err != nil {
		return err
	}

	s.logger.Info("expiring live sessions", "count", len(output.Sessions))

	// A failed teardown doesn't cancel the others, so there is no group context.
	var g errgroup.Group
	g.SetLimit(s.shutdownConcurrency)

	for _, session := range output.Sessions {
		id := session.ID
		g.Go(func() error {
			err := s.ExpireSession(ctx, &ExpireSessionInput{
				SessionID: id,
				Strategy:  ExpiryStale,
			})
			if err != nil {
				s.logger.Warn("failed to expire session on shutdown", "session_id", id, "error", err)
				return fmt.Errorf("session %s: %w", id, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// onExpiryTimer runs on the scheduler's goroutine once a session's TTL passes
func (s *service) onExpiryTimer(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()

	err := s.ExpireSession(ctx, &ExpireSessionInput{
		SessionID: sessionID,
		Strategy:  ExpiryStale,
	})
	if err != nil {
		s.logger.Error("failed to expire session", "session_id", sessionID, "error", err)
		return
	}

	s.logger.Debug("lfg session timed out", "session_id", sessionID)
}

// expireLocked removes the session and applies strategy to its messages.
// The caller must hold the session's sequencer lock.
func (s *service) expireLocked(ctx context.Context, sessionID string, strategy ExpiryStrategy) error {
	if !strategy.Valid() {
		return ErrInvalidStrategy
	}

	s.scheduler.Cancel(sessionID)

	removed, err := s.sessionRepo.Remove(ctx, &sessionRepo.RemoveInput{
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	session := removed.Session
	if session == nil {
		return nil
	}

	s.logger.Debug("lfg session removed", "session_id", sessionID, "strategy", strategy.String())

	// Without a status message the session never became visible, so nothing is touched.
	if session.ReplyMessageID == "" {
		return nil
	}

	switch strategy {
	case ExpiryDoNothing:
		return nil
	case ExpiryDeleteOriginal:
		err := s.messenger.DeleteMessage(ctx, &DeleteMessageInput{
			ChannelID: session.ChannelID,
			MessageID: session.OriginalMessageID,
			Reason:    deleteOriginalReason,
		})
		if err != nil {
			return fmt.Errorf("failed to delete original message: %w", err)
		}
		return nil
	case ExpiryStale:
		text, err := s.messagingService.GetExpiredMessage(ctx, &messaging.GetExpiredMessageInput{})
		if err != nil {
			return err
		}
		return s.closeStatus(ctx, session, BuildClosedMessage(text.Title, text.Message))
	case ExpiryCancelled:
		text, err := s.messagingService.GetCancelledMessage(ctx, &messaging.GetCancelledMessageInput{
			AuthorID: session.AuthorID,
		})
		if err != nil {
			return err
		}
		return s.closeStatus(ctx, session, BuildClosedMessage(text.Title, text.Message))
	default:
		return ErrInvalidStrategy
	}
}

func (s *service) closeStatus(ctx context.Context, session *models.Session, msg *Message) error {
	err := s.messenger.EditMessage(ctx, &EditMessageInput{
		ChannelID: session.ChannelID,
		MessageID: session.ReplyMessageID,
		Message:   msg,
	})
	if err != nil {
		return fmt.Errorf("failed to edit status message: %w", err)
	}
	return nil
}

// renderStatus posts the status message the first time and edits it after that.
// The caller must hold the session's sequencer lock.
func (s *service) renderStatus(ctx context.Context, session *models.Session) error {
	msg := BuildStatusMessage(session)

	if session.ReplyMessageID != "" {
		err := s.messenger.EditMessage(ctx, &EditMessageInput{
			ChannelID: session.ChannelID,
			MessageID: session.ReplyMessageID,
			Message:   msg,
		})
		if err != nil {
			return fmt.Errorf("failed to edit status message: %w", err)
		}
		return nil
	}

	sent, err := s.messenger.SendMessage(ctx, &SendMessageInput{
		GuildID:          session.GuildID,
		ChannelID:        session.ChannelID,
		ReplyToMessageID: session.OriginalMessageID,
		Message:          msg,
	})
	if err != nil {
		return fmt.Errorf("failed to send status message: %w", err)
	}

	err = s.sessionRepo.SetReplyMessage(ctx, &sessionRepo.SetReplyMessageInput{
		SessionID: session.ID,
		MessageID: sent.MessageID,
	})
	if err != nil {
		return fmt.Errorf("failed to record status message: %w", err)
	}
	session.ReplyMessageID = sent.MessageID

	return nil
}

func (s *service) announceReady(ctx context.Context, session *models.Session) error {
	text, err := s.messagingService.GetReadyMessage(ctx, &messaging.GetReadyMessageInput{
		Count:    session.Count(),
		Required: int(session.RequiredNumber),
	})
	if err != nil {
		return err
	}

	_, err = s.messenger.SendMessage(ctx, &SendMessageInput{
		GuildID:   session.GuildID,
		ChannelID: session.ChannelID,
		Message:   BuildReadyMessage(session, text.Title, text.Message),
	})
	if err != nil {
		return fmt.Errorf("failed to send ready announcement: %w", err)
	}
	return nil
}

func (s *service) sendUsage(ctx context.Context, msg *MessageEvent, match *trigger.Match) error {
	text, err := s.messagingService.GetUsageMessage(ctx, &messaging.GetUsageMessageInput{
		FacadeRoleID: match.FacadeRoleID,
	})
	if err != nil {
		return err
	}

	_, err = s.messenger.SendMessage(ctx, &SendMessageInput{
		GuildID:          msg.GuildID,
		ChannelID:        msg.ChannelID,
		ReplyToMessageID: msg.MessageID,
		Message:          BuildUsageMessage(text.Title, text.Message),
	})
	if err != nil {
		return fmt.Errorf("failed to send usage reply: %w", err)
	}
	return nil
}

// addedParticipants returns the distinct human users mentioned in msg,
// without the author, in mention order
func addedParticipants(msg *MessageEvent) []string {
	return lo.Uniq(lo.FilterMap(msg.Mentions, func(u User, _ int) (string, bool) {
		return u.ID, u.ID != "" && !u.Bot && !u.System && u.ID != msg.Author.ID
	}))
}
