package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/chair/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) newSession(id, messageID string) *models.Session {
	return &models.Session{
		ID:                id,
		GuildID:           "test-guild-id",
		ChannelID:         "test-channel-id",
		OriginalMessageID: messageID,
		AuthorID:          "test-author-id",
		FacadeRoleID:      "111",
		ActualRoleID:      "222",
		InitialNumber:     1,
		RequiredNumber:    4,
		CreatedAt:         s.testNow,
		Expiry:            s.testNow.Add(30 * time.Minute),
	}
}

func (s *MemoryRepositoryTestSuite) TestInsertAndGet() {
	session := s.newSession("session-1", "message-1")
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: session}))

	byID, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(session, byID)

	byMessage, err := s.repo.GetByMessage(s.ctx, &GetByMessageInput{MessageID: "message-1"})
	s.Require().NoError(err)
	s.Equal("session-1", byMessage.ID)
}

func (s *MemoryRepositoryTestSuite) TestInsertCopiesSession() {
	session := s.newSession("session-1", "message-1")
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: session}))

	session.Participants = append(session.Participants, "sneaky")

	stored, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Empty(stored.Participants)
}

func (s *MemoryRepositoryTestSuite) TestInsertDuplicate() {
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "message-1")}))

	err := s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "message-2")})
	s.ErrorIs(err, ErrSessionExists)

	err = s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-2", "message-1")})
	s.ErrorIs(err, ErrSessionExists)
}

func (s *MemoryRepositoryTestSuite) TestInsertValidation() {
	s.Error(s.repo.Insert(s.ctx, nil))
	s.Error(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("", "message-1")}))
	s.Error(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "")}))
}

func (s *MemoryRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, &GetInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = s.repo.GetByMessage(s.ctx, &GetByMessageInput{MessageID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestAppendParticipant() {
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "message-1")}))

	updated, err := s.repo.AppendParticipant(s.ctx, &AppendParticipantInput{SessionID: "session-1", UserID: "p1"})
	s.Require().NoError(err)
	s.Equal([]string{"p1"}, updated.Participants)

	updated, err = s.repo.AppendParticipant(s.ctx, &AppendParticipantInput{SessionID: "session-1", UserID: "p2"})
	s.Require().NoError(err)
	s.Equal([]string{"p1", "p2"}, updated.Participants)
	s.Equal(3, updated.Count())

	_, err = s.repo.AppendParticipant(s.ctx, &AppendParticipantInput{SessionID: "missing", UserID: "p1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestAppendParticipantConcurrent() {
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "message-1")}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.repo.AppendParticipant(s.ctx, &AppendParticipantInput{
				SessionID: "session-1",
				UserID:    fmt.Sprintf("user-%d", i),
			})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	stored, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Len(stored.Participants, 50)
}

func (s *MemoryRepositoryTestSuite) TestSetReplyMessage() {
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "message-1")}))

	s.Require().NoError(s.repo.SetReplyMessage(s.ctx, &SetReplyMessageInput{SessionID: "session-1", MessageID: "reply-1"}))

	stored, err := s.repo.Get(s.ctx, &GetInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal("reply-1", stored.ReplyMessageID)

	err = s.repo.SetReplyMessage(s.ctx, &SetReplyMessageInput{SessionID: "missing", MessageID: "reply-1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestRemoveIsIdempotent() {
	s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-1", "message-1")}))

	removed, err := s.repo.Remove(s.ctx, &RemoveInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().NotNil(removed.Session)
	s.Equal("session-1", removed.Session.ID)

	_, err = s.repo.GetByMessage(s.ctx, &GetByMessageInput{MessageID: "message-1"})
	s.ErrorIs(err, ErrSessionNotFound)

	removed, err = s.repo.Remove(s.ctx, &RemoveInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Nil(removed.Session)

	// The message index is free again
	s.NoError(s.repo.Insert(s.ctx, &InsertInput{Session: s.newSession("session-2", "message-1")}))
}

func (s *MemoryRepositoryTestSuite) TestList() {
	later := s.newSession("session-later", "message-1")
	later.Expiry = s.testNow.Add(time.Hour)
	sooner := s.newSession("session-sooner", "message-2")
	other := s.newSession("session-other", "message-3")
	other.GuildID = "other-guild-id"

	for _, session := range []*models.Session{later, sooner, other} {
		s.Require().NoError(s.repo.Insert(s.ctx, &InsertInput{Session: session}))
	}

	all, err := s.repo.List(s.ctx, &ListInput{})
	s.Require().NoError(err)
	s.Require().Len(all.Sessions, 3)
	s.Equal("session-other", all.Sessions[0].ID)
	s.Equal("session-sooner", all.Sessions[1].ID)
	s.Equal("session-later", all.Sessions[2].ID)

	guild, err := s.repo.List(s.ctx, &ListInput{GuildID: "test-guild-id"})
	s.Require().NoError(err)
	s.Len(guild.Sessions, 2)
}
