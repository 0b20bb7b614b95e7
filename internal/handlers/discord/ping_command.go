package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// PingCommand handles the /ping command
type PingCommand struct {
	BaseCommand
}

// NewPingCommand creates a new ping command handler
func NewPingCommand() *PingCommand {
	return &PingCommand{
		BaseCommand: BaseCommand{
			Name:        "ping",
			Description: "Check if the bot is alive",
		},
	}
}

// Handle replies with the gateway heartbeat latency
func (c *PingCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return RespondWithMessage(s, i, fmt.Sprintf("Pong! Latency: %dms", s.HeartbeatLatency().Milliseconds()))
}
