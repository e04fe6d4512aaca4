package interactions

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// OriginalMessage is the message id sentinel addressing the initial response.
const OriginalMessage = "@original"

// responseState is the lifecycle position of one interaction. The responded
// state absorbs deferred: once a substantive response is out, whether it was
// preceded by an acknowledgement no longer matters.
type responseState int

const (
	stateFresh responseState = iota
	stateDeferred
	stateResponded
)

// Context is the addressable form of one inbound interaction. It owns the
// response lifecycle: every operation consults the current state to pick the
// single correct outbound call, and the state advances only after that call
// succeeds. A Context is not safe for concurrent operations; the caller runs
// one operation at a time, matching Discord's own ordering requirements.
type Context struct {
	Session *discordgo.Session

	// Identity
	ID            string
	Token         string
	Version       int
	Type          discordgo.InteractionType
	ApplicationID string
	CreatedAt     time.Time

	// Origin, resolved through the session state cache where possible
	GuildID   string
	ChannelID string
	Guild     *discordgo.Guild
	Channel   *discordgo.Channel

	// Invoker: Member inside a guild (with User filled in), bare User in DMs
	Member *discordgo.Member
	User   *discordgo.User

	client    Client
	deferred  bool
	responded bool
}

// NewContext materializes an interaction into a Context.
func NewContext(s *discordgo.Session, i *discordgo.Interaction) *Context {
	ctx := &Context{
		Session:       s,
		ID:            i.ID,
		Token:         i.Token,
		Version:       i.Version,
		Type:          i.Type,
		ApplicationID: i.AppID,
		GuildID:       i.GuildID,
		ChannelID:     i.ChannelID,
		client:        newRESTClient(s, i),
	}

	if ts, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		ctx.CreatedAt = ts
	}

	if i.Member != nil {
		ctx.Member = i.Member
		ctx.User = i.Member.User
	} else {
		ctx.User = i.User
	}

	if s != nil && s.State != nil {
		if i.GuildID != "" {
			ctx.Guild, _ = s.State.Guild(i.GuildID)
		}
		if i.ChannelID != "" {
			ctx.Channel, _ = s.State.Channel(i.ChannelID)
		}
	}

	return ctx
}

// Author returns the invoking user.
func (c *Context) Author() *discordgo.User {
	return c.User
}

// IsDeferred returns whether a deferred acknowledgement has been sent.
func (c *Context) IsDeferred() bool {
	return c.deferred
}

// HasResponded returns whether a substantive response has been sent.
func (c *Context) HasResponded() bool {
	return c.responded
}

func (c *Context) state() responseState {
	switch {
	case c.responded:
		return stateResponded
	case c.deferred:
		return stateDeferred
	default:
		return stateFresh
	}
}

// Defer sends a deferred acknowledgement, optionally hidden. Calling it
// after the acknowledgement is already out is a caller error that surfaces
// as a protocol error from Discord.
func (c *Context) Defer(hidden bool) error {
	if err := c.client.DeferResponse(discordgo.InteractionResponseDeferredChannelMessageWithSource, hidden); err != nil {
		return err
	}
	c.deferred = true
	return nil
}

// Send delivers a response and returns the created or edited message.
//
// The first send replaces the deferred placeholder when one exists, and
// otherwise posts the initial response and fetches the resulting message.
// Every send after the first is a follow-up message.
func (c *Context) Send(r *Response) (*discordgo.Message, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	files := r.files()
	defer closeFiles(files)

	body := r.body()

	if c.state() == stateResponded {
		return c.client.CreateFollowup(body, files)
	}

	// The initial-response endpoint does not accept multipart bodies, so a
	// first send that carries attachments is acknowledged first and the
	// content goes out through the edit path.
	if len(files) > 0 && c.state() == stateFresh {
		if err := c.Defer(r.Hidden); err != nil {
			return nil, err
		}
	}

	var msg *discordgo.Message
	var err error
	if c.state() == stateDeferred {
		msg, err = c.client.EditOriginalResponse(body, files)
	} else {
		if err = c.client.CreateResponse(body); err != nil {
			return nil, err
		}
		msg, err = c.client.OriginalResponse()
	}
	if err != nil {
		return nil, err
	}

	c.responded = true
	return msg, nil
}

// Edit modifies a previously sent message. The OriginalMessage sentinel
// targets the initial response; any other id targets a follow-up. Editing is
// legal in any state since the caller may already hold a message id.
func (c *Context) Edit(messageID string, r *Response) (*discordgo.Message, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	files := r.files()
	defer closeFiles(files)

	body := r.editBody()

	if messageID == OriginalMessage {
		return c.client.EditOriginalResponse(body, files)
	}
	return c.client.EditFollowup(messageID, body, files)
}

// Delete removes a previously sent message, using the same id routing as
// Edit.
func (c *Context) Delete(messageID string) error {
	if messageID == OriginalMessage {
		return c.client.DeleteOriginalResponse()
	}
	return c.client.DeleteFollowup(messageID)
}
