package interactions

import (
	"github.com/bwmarrin/discordgo"
)

// ComponentContext is the message-component specialization of Context. On
// top of the shared lifecycle it exposes DeferUpdate and Update, which
// target the message hosting the component instead of creating a new one.
type ComponentContext struct {
	*Context

	// CustomID identifies the component that was interacted with
	CustomID string

	// ComponentType is the kind of component (button, select menu, ...)
	ComponentType discordgo.ComponentType

	// Values holds the selected values for select menus, empty otherwise
	Values []string

	// Message is a snapshot of the message hosting the component
	Message *discordgo.Message
}

// NewComponentContext materializes a component-click interaction.
func NewComponentContext(s *discordgo.Session, i *discordgo.Interaction) *ComponentContext {
	data := i.MessageComponentData()

	ctx := &ComponentContext{
		Context:       NewContext(s, i),
		CustomID:      data.CustomID,
		ComponentType: data.ComponentType,
		Values:        []string{},
		Message:       i.Message,
	}

	if data.ComponentType == discordgo.SelectMenuComponent {
		ctx.Values = data.Values
	}

	return ctx
}

// DeferUpdate acknowledges the click without changing the hosting message
// yet.
func (c *ComponentContext) DeferUpdate(hidden bool) error {
	if err := c.client.DeferResponse(discordgo.InteractionResponseDeferredMessageUpdate, hidden); err != nil {
		return err
	}
	c.deferred = true
	return nil
}

// Update rewrites the message hosting the component. The first update goes
// out as a component-update response, or as a direct message edit when the
// click was already acknowledged; later updates become follow-up messages.
func (c *ComponentContext) Update(r *Response) error {
	if err := r.validate(); err != nil {
		return err
	}

	files := r.files()
	defer closeFiles(files)

	body := r.updateBody()

	if c.state() == stateResponded {
		_, err := c.client.CreateFollowup(body, files)
		return err
	}

	// Same constraint as Send: attachments cannot ride on the callback
	// endpoint, so acknowledge first and edit the hosting message directly.
	if len(files) > 0 && c.state() == stateFresh {
		if err := c.DeferUpdate(false); err != nil {
			return err
		}
	}

	if c.state() == stateDeferred {
		if _, err := c.client.EditMessage(c.ChannelID, c.Message.ID, body, files); err != nil {
			return err
		}
	} else {
		if err := c.client.CreateUpdateResponse(body); err != nil {
			return err
		}
	}

	c.responded = true
	return nil
}
