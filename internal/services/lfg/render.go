package lfg

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/chair/internal/models"
	"github.com/samber/lo"
)

const (
	// ColorOpen is the embed color for open and ready pings
	ColorOpen = 0x8ae24a

	// ColorClosed is the embed color for expired and cancelled pings
	ColorClosed = 0xff3030

	joinTokenPrefix = "lfg-"
	joinLabel       = "Logging on / Online!"
)

// JoinToken returns the join button custom ID for a session
func JoinToken(sessionID string) string {
	return joinTokenPrefix + sessionID
}

// ParseJoinToken extracts the session ID from a join button custom ID
func ParseJoinToken(customID string) (string, bool) {
	sessionID, ok := strings.CutPrefix(customID, joinTokenPrefix)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}

func userMention(id string) string {
	return fmt.Sprintf("<@%s>", id)
}

func roleMention(id string) string {
	return fmt.Sprintf("<@&%s>", id)
}

// members returns the author, then joiners, then users mentioned in the ping
func members(session *models.Session) []string {
	ids := make([]string, 0, 1+len(session.Participants)+len(session.AddedParticipants))
	ids = append(ids, session.AuthorID)
	ids = append(ids, session.Participants...)
	ids = append(ids, session.AddedParticipants...)
	return ids
}

// participantListing renders the bulleted member list, padded with an
// "others" line when the committed head count exceeds the known users.
func participantListing(session *models.Session) string {
	named := members(session)
	lines := lo.Map(named, func(id string, _ int) string {
		return "`•` " + userMention(id)
	})

	if others := session.Count() - len(named); others > 0 {
		lines = append(lines, fmt.Sprintf("`•` **and %d other(s)...**", others))
	}

	return strings.Join(lines, "\n")
}

// BuildStatusMessage renders the status message of an open session
func BuildStatusMessage(session *models.Session) *Message {
	description := fmt.Sprintf("%s is looking for a game! (expires: <t:%d:R>)\n\n**Participants:**\n%s\n\n*delete the original message to cancel*",
		userMention(session.AuthorID),
		session.Expiry.Unix(),
		participantListing(session),
	)

	return &Message{
		Content: fmt.Sprintf("%s ||%s||", roleMention(session.FacadeRoleID), roleMention(session.ActualRoleID)),
		Embed: &Embed{
			Title:       fmt.Sprintf("LFG Ping [%d/%d]", session.Count(), session.RequiredNumber),
			Description: description,
			Color:       ColorOpen,
		},
		JoinToken: JoinToken(session.ID),
		JoinLabel: joinLabel,
	}
}

// BuildReadyMessage renders the announcement for a full group. The mentions
// are spoilered but still notify.
func BuildReadyMessage(session *models.Session, title, text string) *Message {
	mentions := lo.Map(members(session), func(id string, _ int) string {
		return userMention(id)
	})

	return &Message{
		Content: fmt.Sprintf("||%s||", strings.Join(mentions, " ")),
		Embed: &Embed{
			Title:       title,
			Description: text,
			Color:       ColorOpen,
		},
		AllowMentions: true,
	}
}

// BuildClosedMessage renders the replacement for a status message whose
// session expired or was cancelled. It has no content and no join button.
func BuildClosedMessage(title, text string) *Message {
	return &Message{
		Embed: &Embed{
			Title:       title,
			Description: text,
			Color:       ColorClosed,
		},
	}
}

// BuildUsageMessage renders the instructions sent when a ping has no ratio
func BuildUsageMessage(title, text string) *Message {
	return &Message{
		Embed: &Embed{
			Title:       title,
			Description: text,
			Color:       ColorClosed,
		},
	}
}
