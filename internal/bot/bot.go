package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/aikawa9376/kotori-bot/internal/interactions"
	"github.com/aikawa9376/kotori-bot/internal/permissions"
)

// CommandHandler processes one slash-command invocation.
type CommandHandler func(ctx *interactions.CommandContext) error

// ComponentHandler processes one component click, with its parsed custom id.
type ComponentHandler func(ctx *interactions.ComponentContext, id *CustomID) error

type command struct {
	definition *discordgo.ApplicationCommand
	required   permissions.Level
	handler    CommandHandler
}

// Bot routes interaction events to registered handlers. Commands are keyed
// by name and gated by a permission level; components are keyed by the
// domain part of their custom id.
type Bot struct {
	session *discordgo.Session
	perms   *permissions.Service
	appID   string
	guildID string

	commands   map[string]*command
	components map[string]ComponentHandler
}

// New creates a Bot. guildID may be empty to register commands globally.
func New(session *discordgo.Session, perms *permissions.Service, appID, guildID string) *Bot {
	return &Bot{
		session:    session,
		perms:      perms,
		appID:      appID,
		guildID:    guildID,
		commands:   make(map[string]*command),
		components: make(map[string]ComponentHandler),
	}
}

// RegisterCommand adds a slash command and its handler.
func (b *Bot) RegisterCommand(definition *discordgo.ApplicationCommand, required permissions.Level, handler CommandHandler) {
	b.commands[definition.Name] = &command{
		definition: definition,
		required:   required,
		handler:    handler,
	}
}

// RegisterComponent adds a handler for a custom-id domain.
func (b *Bot) RegisterComponent(domain string, handler ComponentHandler) {
	b.components[domain] = handler
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	for name, cmd := range b.commands {
		if _, err := b.session.ApplicationCommandCreate(b.appID, b.guildID, cmd.definition); err != nil {
			return fmt.Errorf("failed to register command %s: %w", name, err)
		}
	}

	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, e *discordgo.InteractionCreate) {
	switch e.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(interactions.NewCommandContext(s, e.Interaction))
	case discordgo.InteractionMessageComponent:
		b.handleComponent(interactions.NewComponentContext(s, e.Interaction))
	}
}

func (b *Bot) handleCommand(ctx *interactions.CommandContext) {
	cmd, ok := b.commands[ctx.Name]
	if !ok {
		log.Printf("no handler registered for command %s", ctx.Name)
		return
	}

	allowed, err := b.perms.Allow(context.Background(), cmd.required, ctx.GuildID, ctx.Member, ctx.User)
	if err != nil {
		log.Printf("permission check for %s failed: %v", ctx.Name, err)
		b.replyError(ctx.Context, "Something went wrong. Please try again later.")
		return
	}
	if !allowed {
		b.replyError(ctx.Context, "You don't have permission to use this command.")
		return
	}

	if err := invoke(func() error { return cmd.handler(ctx) }); err != nil {
		log.Printf("command %s failed: %v", ctx.Name, err)
		b.replyError(ctx.Context, "An error occurred while processing your request.")
	}
}

func (b *Bot) handleComponent(ctx *interactions.ComponentContext) {
	id, err := ParseCustomID(ctx.CustomID)
	if err != nil {
		log.Printf("unparseable custom id %q: %v", ctx.CustomID, err)
		return
	}

	handler, ok := b.components[id.Domain]
	if !ok {
		log.Printf("no handler registered for component domain %s", id.Domain)
		return
	}

	if err := invoke(func() error { return handler(ctx, id) }); err != nil {
		log.Printf("component %s failed: %v", ctx.CustomID, err)
		b.replyError(ctx.Context, "An error occurred while processing your request.")
	}
}

// invoke runs a handler, converting panics into errors so one bad handler
// cannot take the event loop down.
func invoke(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic recovered in handler: %v", r)
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("panic: %v", v)
			}
		}
	}()
	return fn()
}

// replyError sends a hidden error notice; the state machine picks the right
// call whether or not the handler already responded.
func (b *Bot) replyError(ctx *interactions.Context, message string) {
	if _, err := ctx.Send(interactions.NewHiddenResponse(message)); err != nil {
		log.Printf("failed to deliver error response: %v", err)
	}
}
