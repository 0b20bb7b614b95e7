package lfg

import (
	"testing"
	"time"

	"github.com/KirkDiggler/chair/internal/models"
	"github.com/stretchr/testify/suite"
)

type RenderTestSuite struct {
	suite.Suite
	session *models.Session
}

func (s *RenderTestSuite) SetupTest() {
	s.session = &models.Session{
		ID:                "session-1",
		AuthorID:          "author-1",
		FacadeRoleID:      "111",
		ActualRoleID:      "222",
		Participants:      []string{"joiner-1"},
		AddedParticipants: []string{"friend-1"},
		InitialNumber:     2,
		RequiredNumber:    5,
		Expiry:            time.Unix(1700000000, 0),
	}
}

func (s *RenderTestSuite) TestJoinToken_RoundTrip() {
	id, ok := ParseJoinToken(JoinToken("abc-123"))
	s.True(ok)
	s.Equal("abc-123", id)

	for _, customID := range []string{"", "lfg-", "roll_dice_button", "xlfg-abc"} {
		_, ok := ParseJoinToken(customID)
		s.False(ok, customID)
	}
}

func (s *RenderTestSuite) TestBuildStatusMessage() {
	msg := BuildStatusMessage(s.session)

	s.Equal("<@&111> ||<@&222>||", msg.Content)
	s.Equal("LFG Ping [3/5]", msg.Embed.Title)
	s.Equal(ColorOpen, msg.Embed.Color)
	s.Equal("lfg-session-1", msg.JoinToken)
	s.NotEmpty(msg.JoinLabel)
	s.False(msg.AllowMentions)

	s.Equal("<@author-1> is looking for a game! (expires: <t:1700000000:R>)\n\n"+
		"**Participants:**\n"+
		"`•` <@author-1>\n"+
		"`•` <@joiner-1>\n"+
		"`•` <@friend-1>\n\n"+
		"*delete the original message to cancel*", msg.Embed.Description)
}

func (s *RenderTestSuite) TestBuildStatusMessage_Others() {
	s.session.AddedParticipants = nil
	s.session.InitialNumber = 3

	msg := BuildStatusMessage(s.session)

	s.Equal("LFG Ping [4/5]", msg.Embed.Title)
	s.Contains(msg.Embed.Description, "`•` <@joiner-1>\n`•` **and 2 other(s)...**")
}

func (s *RenderTestSuite) TestBuildReadyMessage() {
	msg := BuildReadyMessage(s.session, "Everyone's ready! [5/5]", "Good luck")

	s.Equal("||<@author-1> <@joiner-1> <@friend-1>||", msg.Content)
	s.Equal("Everyone's ready! [5/5]", msg.Embed.Title)
	s.Empty(msg.JoinToken)
	s.True(msg.AllowMentions)
}

func (s *RenderTestSuite) TestBuildClosedMessage() {
	msg := BuildClosedMessage("Expired ping", "too slow")

	s.Empty(msg.Content)
	s.Empty(msg.JoinToken)
	s.False(msg.AllowMentions)
	s.Equal(ColorClosed, msg.Embed.Color)
	s.Equal("too slow", msg.Embed.Description)
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}
