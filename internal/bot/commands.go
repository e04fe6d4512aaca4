package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/aikawa9376/kotori-bot/internal/interactions"
	"github.com/aikawa9376/kotori-bot/internal/permissions"
)

// RegisterBuiltins wires the stock commands: ping plus the blacklist
// management commands.
func (b *Bot) RegisterBuiltins() {
	b.RegisterCommand(&discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check that the bot is alive",
	}, permissions.LevelEveryone, b.handlePing)

	b.RegisterCommand(&discordgo.ApplicationCommand{
		Name:        "ban",
		Description: "Add a user to the blacklist",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to ban",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Why the user is being banned",
			},
		},
	}, permissions.LevelSubOwner, b.handleBan)

	b.RegisterCommand(&discordgo.ApplicationCommand{
		Name:        "unban",
		Description: "Remove a user from the blacklist",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to unban",
				Required:    true,
			},
		},
	}, permissions.LevelSubOwner, b.handleUnban)

	b.RegisterCommand(&discordgo.ApplicationCommand{
		Name:        "bans",
		Description: "List the blacklist",
	}, permissions.LevelSubOwner, b.handleBans)

	b.RegisterComponent("ban", b.handleBanComponent)
}

func (b *Bot) handlePing(ctx *interactions.CommandContext) error {
	content := "Pong!"
	if b.session != nil {
		content = fmt.Sprintf("Pong! %dms", b.session.HeartbeatLatency().Milliseconds())
	}

	_, err := ctx.Send(interactions.NewResponse(content))
	return err
}

func (b *Bot) handleBan(ctx *interactions.CommandContext) error {
	target := ctx.Options["user"]
	if target.User == nil {
		_, err := ctx.Send(interactions.NewHiddenResponse("I couldn't resolve that user."))
		return err
	}

	reason := ctx.Options["reason"].Str

	confirmID, err := NewCustomID("ban", "confirm", target.User.ID, reason).Encode()
	if err != nil {
		return err
	}
	cancelID, err := NewCustomID("ban", "cancel").Encode()
	if err != nil {
		return err
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Confirm", Style: discordgo.DangerButton, CustomID: confirmID},
			discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: cancelID},
		},
	}

	_, err = ctx.Send(
		interactions.NewHiddenResponse(fmt.Sprintf("Ban <@%s>?", target.User.ID)).
			WithComponents(row),
	)
	return err
}

func (b *Bot) handleBanComponent(ctx *interactions.ComponentContext, id *CustomID) error {
	allowed, err := b.perms.Allow(context.Background(), permissions.LevelSubOwner, ctx.GuildID, ctx.Member, ctx.User)
	if err != nil {
		return err
	}
	if !allowed {
		_, err = ctx.Send(interactions.NewHiddenResponse("You don't have permission to do that."))
		return err
	}

	switch id.Action {
	case "confirm":
		userID := id.Arg(0)
		// The reason may itself contain the separator; reassemble it.
		reason := strings.Join(id.Args[1:], customIDSeparator)

		if _, err := b.perms.Ban(context.Background(), userID, reason); err != nil {
			return err
		}
		return ctx.Update(interactions.NewResponse(fmt.Sprintf("Banned <@%s>.", userID)))

	case "cancel":
		return ctx.Update(interactions.NewResponse("Ban cancelled."))

	default:
		return fmt.Errorf("unknown ban action %q", id.Action)
	}
}

func (b *Bot) handleUnban(ctx *interactions.CommandContext) error {
	target := ctx.Options["user"]
	if target.User == nil {
		_, err := ctx.Send(interactions.NewHiddenResponse("I couldn't resolve that user."))
		return err
	}

	if err := b.perms.Unban(context.Background(), target.User.ID); err != nil {
		return err
	}

	_, err := ctx.Send(interactions.NewHiddenResponse(fmt.Sprintf("Unbanned <@%s>.", target.User.ID)))
	return err
}

func (b *Bot) handleBans(ctx *interactions.CommandContext) error {
	bans, err := b.perms.Bans(context.Background())
	if err != nil {
		return err
	}

	if len(bans) == 0 {
		_, err = ctx.Send(interactions.NewHiddenResponse("The blacklist is empty."))
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "Blacklist",
		Type:  discordgo.EmbedTypeRich,
	}
	for _, ban := range bans {
		reason := ban.Reason
		if reason == "" {
			reason = "no reason recorded"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("<@%s>", ban.UserID),
			Value: fmt.Sprintf("%s (since %s)", reason, ban.CreatedAt.Format("2006-01-02")),
		})
	}

	_, err = ctx.Send(interactions.NewHiddenResponse("").WithEmbeds(embed))
	return err
}
