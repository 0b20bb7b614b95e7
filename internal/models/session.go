package models

import (
	"time"

	"github.com/samber/lo"
)

// Session represents a looking-for-group ping being tracked until it fills or expires
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// GuildID is the Discord server the ping was posted in
	GuildID string

	// ChannelID is the Discord channel the ping was posted in
	ChannelID string

	// OriginalMessageID is the ID of the message that triggered the session
	OriginalMessageID string

	// ReplyMessageID is the ID of the bot's status message, empty until it has been sent
	ReplyMessageID string

	// AuthorID is the Discord user ID of the player looking for a group
	AuthorID string

	// FacadeRoleID is the publicly pinged alias role
	FacadeRoleID string

	// ActualRoleID is the real role the alias resolves to
	ActualRoleID string

	// Participants contains the users who joined through the status message, in join order
	Participants []string

	// AddedParticipants contains the users mentioned in the original message
	AddedParticipants []string

	// ExcludedParticipants is reserved and currently always empty
	ExcludedParticipants []string

	// InterestedParticipants is reserved and currently always empty
	InterestedParticipants []string

	// InitialNumber is the head count already committed when the session was created
	InitialNumber uint8

	// RequiredNumber is the target group size
	RequiredNumber uint8

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// Expiry is when the session expires if it hasn't filled
	Expiry time.Time
}

// Count returns the live fill count of the session
func (s *Session) Count() int {
	return int(s.InitialNumber) + len(s.Participants)
}

// IsFull reports whether the session has reached its required group size
func (s *Session) IsFull() bool {
	return s.Count() >= int(s.RequiredNumber)
}

// HasMember reports whether the user is the author or already counted as a participant
func (s *Session) HasMember(userID string) bool {
	return userID == s.AuthorID ||
		lo.Contains(s.Participants, userID) ||
		lo.Contains(s.AddedParticipants, userID)
}

// Clone returns a deep copy of the session that shares no slices with the original
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Participants = append([]string(nil), s.Participants...)
	clone.AddedParticipants = append([]string(nil), s.AddedParticipants...)
	clone.ExcludedParticipants = append([]string(nil), s.ExcludedParticipants...)
	clone.InterestedParticipants = append([]string(nil), s.InterestedParticipants...)
	return &clone
}
