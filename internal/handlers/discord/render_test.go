package discord

import (
	"testing"

	"github.com/KirkDiggler/chair/internal/services/lfg"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
)

type RenderTestSuite struct {
	suite.Suite
}

func (s *RenderTestSuite) TestToMessageEvent() {
	event := toMessageEvent(&discordgo.Message{
		ID:        "message-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Content:   "<@&111> 2/4",
		Author:    &discordgo.User{ID: "author-1"},
		Mentions: []*discordgo.User{
			{ID: "friend-1"},
			nil,
			{ID: "bot-1", Bot: true},
		},
	})

	s.Equal("message-1", event.MessageID)
	s.Equal("guild-1", event.GuildID)
	s.Equal("channel-1", event.ChannelID)
	s.Equal("<@&111> 2/4", event.Content)
	s.Equal(lfg.User{ID: "author-1"}, event.Author)
	s.Equal([]lfg.User{{ID: "friend-1"}, {ID: "bot-1", Bot: true}}, event.Mentions)
}

func (s *RenderTestSuite) TestToMessageEvent_MissingAuthor() {
	event := toMessageEvent(&discordgo.Message{ID: "message-1"})

	s.Empty(event.Author.ID)
	s.Empty(event.Mentions)
}

func (s *RenderTestSuite) TestInteractionUser() {
	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "member-1"}},
	}}
	s.Equal("member-1", interactionUser(member).ID)

	direct := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "user-1"},
	}}
	s.Equal("user-1", interactionUser(direct).ID)
}

func (s *RenderTestSuite) TestRenderComponents() {
	s.Empty(renderComponents(&lfg.Message{}))

	components := renderComponents(&lfg.Message{JoinToken: "lfg-session-1"})
	s.Require().Len(components, 1)

	row := components[0].(discordgo.ActionsRow)
	button := row.Components[0].(discordgo.Button)
	s.Equal("lfg-session-1", button.CustomID)
	s.Equal("Join", button.Label)
	s.Equal(discordgo.SuccessButton, button.Style)
}

func (s *RenderTestSuite) TestRenderEmbeds() {
	s.Empty(renderEmbeds(&lfg.Message{}))

	embeds := renderEmbeds(&lfg.Message{Embed: &lfg.Embed{Title: "t", Description: "d", Color: 1}})
	s.Equal([]*discordgo.MessageEmbed{{Title: "t", Description: "d", Color: 1}}, embeds)
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}
