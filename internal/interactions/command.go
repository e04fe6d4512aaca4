package interactions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// OptionKind tags which value an OptionValue carries.
type OptionKind int

const (
	KindString OptionKind = iota
	KindInteger
	KindBoolean
	KindUser
	KindChannel
	KindRole
	KindNumber
	KindRaw
)

// OptionValue is a slash-command option decoded once at parse time. Kind
// selects the populated field; the remaining fields hold their zero values.
type OptionValue struct {
	Kind OptionKind

	Str     string
	Int     int64
	Bool    bool
	Number  float64
	User    *discordgo.User
	Member  *discordgo.Member
	Channel *discordgo.Channel
	Role    *discordgo.Role
	Raw     interface{}
}

// String renders the value the way it would appear in a reconstructed
// command line.
func (v OptionValue) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindUser:
		if v.User != nil {
			return v.User.Username
		}
	case KindChannel:
		if v.Channel != nil {
			return v.Channel.Name
		}
	case KindRole:
		if v.Role != nil {
			return v.Role.Name
		}
	}
	return fmt.Sprint(v.Raw)
}

// CommandContext is the slash-command specialization of Context. Options
// are decoded into typed values keyed by option name; when the platform
// sends a duplicate name, the first occurrence wins.
type CommandContext struct {
	*Context

	Name    string
	Options map[string]OptionValue
}

// NewCommandContext materializes a slash-command interaction.
func NewCommandContext(s *discordgo.Session, i *discordgo.Interaction) *CommandContext {
	ctx := &CommandContext{
		Context: NewContext(s, i),
		Options: make(map[string]OptionValue),
	}

	data := i.ApplicationCommandData()
	ctx.Name = data.Name

	for _, opt := range data.Options {
		if _, ok := ctx.Options[opt.Name]; ok {
			continue
		}
		ctx.Options[opt.Name] = decodeOption(s, i.GuildID, opt)
	}

	return ctx
}

// decodeOption converts one wire option into its typed value. References to
// users, channels and roles resolve through the session state cache and fall
// back to id-only placeholders when the cache misses.
func decodeOption(s *discordgo.Session, guildID string, opt *discordgo.ApplicationCommandInteractionDataOption) OptionValue {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		return OptionValue{Kind: KindString, Str: opt.StringValue()}

	case discordgo.ApplicationCommandOptionInteger:
		return OptionValue{Kind: KindInteger, Int: opt.IntValue()}

	case discordgo.ApplicationCommandOptionBoolean:
		return OptionValue{Kind: KindBoolean, Bool: opt.BoolValue()}

	case discordgo.ApplicationCommandOptionUser:
		id, _ := opt.Value.(string)
		v := OptionValue{Kind: KindUser}
		if s != nil && s.State != nil && guildID != "" {
			if member, err := s.State.Member(guildID, id); err == nil {
				v.Member = member
				v.User = member.User
			}
		}
		if v.User == nil {
			v.User = &discordgo.User{ID: id}
		}
		return v

	case discordgo.ApplicationCommandOptionChannel:
		id, _ := opt.Value.(string)
		v := OptionValue{Kind: KindChannel}
		if s != nil && s.State != nil {
			if channel, err := s.State.Channel(id); err == nil {
				v.Channel = channel
			}
		}
		if v.Channel == nil {
			v.Channel = &discordgo.Channel{ID: id}
		}
		return v

	case discordgo.ApplicationCommandOptionRole:
		id, _ := opt.Value.(string)
		v := OptionValue{Kind: KindRole}
		if s != nil && s.State != nil && guildID != "" {
			if role, err := s.State.Role(guildID, id); err == nil {
				v.Role = role
			}
		}
		if v.Role == nil {
			v.Role = &discordgo.Role{ID: id}
		}
		return v

	case discordgo.ApplicationCommandOptionNumber:
		return OptionValue{Kind: KindNumber, Number: opt.FloatValue()}

	default:
		return OptionValue{Kind: KindRaw, Raw: opt.Value}
	}
}

// Content reconstructs the invocation as a command line, e.g. "/ban 42".
func (c *CommandContext) Content() string {
	parts := make([]string, 0, len(c.Options)+1)
	parts = append(parts, "/"+c.Name)
	for _, v := range c.Options {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " ")
}
