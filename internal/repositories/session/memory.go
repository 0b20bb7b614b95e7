package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KirkDiggler/chair/internal/models"
)

var (
	// ErrSessionNotFound is returned when a session is not in the registry
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when inserting a session whose ID or message is already registered
	ErrSessionExists = errors.New("session already exists")
)

// memoryRepository implements the Repository interface with in-process maps.
// Sessions don't survive a restart.
type memoryRepository struct {
	mu        sync.RWMutex
	sessions  map[string]*models.Session
	byMessage map[string]string
}

// NewMemory creates a new in-memory session registry
func NewMemory() *memoryRepository {
	return &memoryRepository{
		sessions:  make(map[string]*models.Session),
		byMessage: make(map[string]string),
	}
}

// Insert adds a session under its ID and originating message
func (r *memoryRepository) Insert(ctx context.Context, input *InsertInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if input.Session.OriginalMessageID == "" {
		return errors.New("original message ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[input.Session.ID]; ok {
		return ErrSessionExists
	}
	if _, ok := r.byMessage[input.Session.OriginalMessageID]; ok {
		return ErrSessionExists
	}

	r.sessions[input.Session.ID] = input.Session.Clone()
	r.byMessage[input.Session.OriginalMessageID] = input.Session.ID

	return nil
}

// Get retrieves a session by ID
func (r *memoryRepository) Get(ctx context.Context, input *GetInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[input.SessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session.Clone(), nil
}

// GetByMessage retrieves a session by the ID of the message that triggered it
func (r *memoryRepository) GetByMessage(ctx context.Context, input *GetByMessageInput) (*models.Session, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionID, ok := r.byMessage[input.MessageID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return session.Clone(), nil
}

// AppendParticipant adds a joiner to the end of the participant list
func (r *memoryRepository) AppendParticipant(ctx context.Context, input *AppendParticipantInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, errors.New("input, session ID and user ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[input.SessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.Participants = append(session.Participants, input.UserID)

	return session.Clone(), nil
}

// SetReplyMessage records the ID of the session's status message
func (r *memoryRepository) SetReplyMessage(ctx context.Context, input *SetReplyMessageInput) error {
	if input == nil || input.SessionID == "" || input.MessageID == "" {
		return errors.New("input, session ID and message ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[input.SessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.ReplyMessageID = input.MessageID

	return nil
}

// Remove deletes a session from both indexes. Removing an unknown session is not an error.
func (r *memoryRepository) Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[input.SessionID]
	if !ok {
		return &RemoveOutput{}, nil
	}
	delete(r.sessions, input.SessionID)
	if r.byMessage[session.OriginalMessageID] == input.SessionID {
		delete(r.byMessage, session.OriginalMessageID)
	}

	return &RemoveOutput{Session: session}, nil
}

// List returns every live session, soonest expiry first
func (r *memoryRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	r.mu.RLock()
	sessions := make([]*models.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		if input != nil && input.GuildID != "" && session.GuildID != input.GuildID {
			continue
		}
		sessions = append(sessions, session.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Expiry.Equal(sessions[j].Expiry) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].Expiry.Before(sessions[j].Expiry)
	})

	return &ListOutput{Sessions: sessions}, nil
}
