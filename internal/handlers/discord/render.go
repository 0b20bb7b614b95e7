package discord

import (
	"github.com/KirkDiggler/chair/internal/services/lfg"
	"github.com/bwmarrin/discordgo"
)

// renderEmbeds converts a rendered message's embed, if any
func renderEmbeds(msg *lfg.Message) []*discordgo.MessageEmbed {
	if msg.Embed == nil {
		return []*discordgo.MessageEmbed{}
	}

	return []*discordgo.MessageEmbed{
		{
			Title:       msg.Embed.Title,
			Description: msg.Embed.Description,
			Color:       msg.Embed.Color,
		},
	}
}

// renderComponents builds the single join button row. An empty slice is
// returned when there is no button so edits clear the old one.
func renderComponents(msg *lfg.Message) []discordgo.MessageComponent {
	if msg.JoinToken == "" {
		return []discordgo.MessageComponent{}
	}

	label := msg.JoinLabel
	if label == "" {
		label = "Join"
	}

	joinButton := discordgo.Button{
		Label:    label,
		Style:    discordgo.SuccessButton,
		CustomID: msg.JoinToken,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎮",
		},
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{joinButton},
		},
	}
}

// renderAllowedMentions suppresses every mention unless the message opts in
func renderAllowedMentions(msg *lfg.Message) *discordgo.MessageAllowedMentions {
	if !msg.AllowMentions {
		return &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		}
	}

	return &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{
			discordgo.AllowedMentionTypeRoles,
			discordgo.AllowedMentionTypeUsers,
		},
	}
}

// renderMessageSend builds a new channel message
func renderMessageSend(input *lfg.SendMessageInput) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content:         input.Message.Content,
		Embeds:          renderEmbeds(input.Message),
		AllowedMentions: renderAllowedMentions(input.Message),
	}

	if components := renderComponents(input.Message); len(components) > 0 {
		send.Components = components
	}

	if input.ReplyToMessageID != "" {
		send.Reference = &discordgo.MessageReference{
			MessageID: input.ReplyToMessageID,
			ChannelID: input.ChannelID,
			GuildID:   input.GuildID,
		}
	}

	return send
}

// renderMessageEdit builds an edit replacing everything the message shows
func renderMessageEdit(input *lfg.EditMessageInput) *discordgo.MessageEdit {
	content := input.Message.Content
	embeds := renderEmbeds(input.Message)
	components := renderComponents(input.Message)

	return &discordgo.MessageEdit{
		ID:              input.MessageID,
		Channel:         input.ChannelID,
		Content:         &content,
		Embeds:          &embeds,
		Components:      &components,
		AllowedMentions: renderAllowedMentions(input.Message),
	}
}

func toUser(u *discordgo.User) lfg.User {
	if u == nil {
		return lfg.User{}
	}
	return lfg.User{
		ID:     u.ID,
		Bot:    u.Bot,
		System: u.System,
	}
}

// toMessageEvent converts a gateway message
func toMessageEvent(m *discordgo.Message) *lfg.MessageEvent {
	mentions := make([]lfg.User, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		if u == nil {
			continue
		}
		mentions = append(mentions, toUser(u))
	}

	return &lfg.MessageEvent{
		MessageID: m.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		Author:    toUser(m.Author),
		Mentions:  mentions,
	}
}

// interactionUser returns whoever triggered the interaction, in a guild or a DM
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// toInteractionEvent converts a component interaction
func toInteractionEvent(i *discordgo.InteractionCreate) *lfg.InteractionEvent {
	return &lfg.InteractionEvent{
		CustomID:  i.MessageComponentData().CustomID,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		User:      toUser(interactionUser(i)),
	}
}
