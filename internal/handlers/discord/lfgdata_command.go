package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/chair/internal/models"
	aliasRepo "github.com/KirkDiggler/chair/internal/repositories/alias"
	"github.com/KirkDiggler/chair/internal/services/lfg"
	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

const manageRolesPermission int64 = discordgo.PermissionManageRoles

// LFGDataCommand handles the /lfgdata command
type LFGDataCommand struct {
	BaseCommand
	aliasRepo      aliasRepo.Repository
	lfgService     lfg.Service
	requestTimeout time.Duration
	logger         *slog.Logger
}

// NewLFGDataCommand creates a new lfgdata command handler
func NewLFGDataCommand(aliases aliasRepo.Repository, lfgService lfg.Service, requestTimeout time.Duration, logger *slog.Logger) *LFGDataCommand {
	permissions := manageRolesPermission
	if logger == nil {
		logger = slog.Default()
	}

	return &LFGDataCommand{
		BaseCommand: BaseCommand{
			Name:        "lfgdata",
			Description: "Manage looking-for-group role aliases",
			Permissions: &permissions,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List every role alias",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Ping a hidden role whenever a visible role is pinged",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "facade",
							Description: "The role people ping",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "actual",
							Description: "The role that gets notified",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a role alias",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "facade",
							Description: "The role people ping",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sessions",
					Description: "Show the open pings in this server",
				},
			},
		},
		aliasRepo:      aliases,
		lfgService:     lfgService,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Handle processes a Discord interaction for the lfgdata command
func (c *LFGDataCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.requestTimeout)
	defer cancel()

	subcommand := data.Options[0]
	switch subcommand.Name {
	case "list":
		return c.handleList(ctx, s, i)
	case "add":
		return c.handleAdd(ctx, s, i, subcommand.Options)
	case "remove":
		return c.handleRemove(ctx, s, i, subcommand.Options)
	case "sessions":
		return c.handleSessions(ctx, s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", subcommand.Name))
	}
}

func (c *LFGDataCommand) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.aliasRepo.ListAliases(ctx, &aliasRepo.ListAliasesInput{})
	if err != nil {
		c.logger.Error("failed to list aliases", "error", err)
		return RespondWithError(s, i, "Couldn't load the role aliases, try again later.")
	}

	return RespondWithEphemeralEmbed(s, i, "Role aliases", formatAliases(output.Aliases))
}

func (c *LFGDataCommand) handleAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	facade := roleOption(options, "facade")
	actual := roleOption(options, "actual")
	if facade == "" || actual == "" {
		return RespondWithError(s, i, "Both a facade and an actual role are required.")
	}

	err := c.aliasRepo.SaveAlias(ctx, &aliasRepo.SaveAliasInput{
		Alias: &models.RoleAlias{
			FacadeRoleID: facade,
			ActualRoleID: actual,
		},
	})
	if err != nil {
		c.logger.Error("failed to save alias", "facade_role_id", facade, "error", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to save alias: %v", err))
	}

	c.logger.Info("role alias saved", "facade_role_id", facade, "actual_role_id", actual, "guild_id", i.GuildID)
	return RespondWithEphemeralEmbed(s, i, "Alias saved", fmt.Sprintf("<@&%s> → <@&%s>", facade, actual))
}

func (c *LFGDataCommand) handleRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	facade := roleOption(options, "facade")
	if facade == "" {
		return RespondWithError(s, i, "A facade role is required.")
	}

	err := c.aliasRepo.DeleteAlias(ctx, &aliasRepo.DeleteAliasInput{
		FacadeRoleID: facade,
	})
	if errors.Is(err, aliasRepo.ErrAliasNotFound) {
		return RespondWithError(s, i, fmt.Sprintf("<@&%s> has no alias.", facade))
	}
	if err != nil {
		c.logger.Error("failed to delete alias", "facade_role_id", facade, "error", err)
		return RespondWithError(s, i, fmt.Sprintf("Failed to remove alias: %v", err))
	}

	c.logger.Info("role alias removed", "facade_role_id", facade, "guild_id", i.GuildID)
	return RespondWithEphemeralEmbed(s, i, "Alias removed", fmt.Sprintf("<@&%s> no longer starts pings.", facade))
}

func (c *LFGDataCommand) handleSessions(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.lfgService.ListSessions(ctx, &lfg.ListSessionsInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		c.logger.Error("failed to list sessions", "guild_id", i.GuildID, "error", err)
		return RespondWithError(s, i, "Couldn't load the open pings, try again later.")
	}

	return RespondWithEphemeralEmbed(s, i, "Open pings", formatSessions(output.Sessions))
}

// roleOption returns the role ID passed for the named option
func roleOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	option, ok := lo.Find(options, func(o *discordgo.ApplicationCommandInteractionDataOption) bool {
		return o.Name == name
	})
	if !ok {
		return ""
	}

	id, _ := option.Value.(string)
	return id
}

func formatAliases(aliases []*models.RoleAlias) string {
	if len(aliases) == 0 {
		return "No aliases configured. Add one with `/lfgdata add`."
	}

	lines := lo.Map(aliases, func(a *models.RoleAlias, _ int) string {
		return fmt.Sprintf("<@&%s> → <@&%s>", a.FacadeRoleID, a.ActualRoleID)
	})
	return strings.Join(lines, "\n")
}

func formatSessions(sessions []*models.Session) string {
	if len(sessions) == 0 {
		return "No open pings."
	}

	lines := lo.Map(sessions, func(session *models.Session, _ int) string {
		return fmt.Sprintf("<@%s> in <#%s> [%d/%d] expires <t:%d:R>",
			session.AuthorID,
			session.ChannelID,
			session.Count(),
			session.RequiredNumber,
			session.Expiry.Unix())
	})
	return strings.Join(lines, "\n")
}
