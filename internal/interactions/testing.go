package interactions

import (
	"github.com/bwmarrin/discordgo"
)

// RecordedCall is one outbound call captured by a RecordingClient.
type RecordedCall struct {
	Name      string
	Kind      discordgo.InteractionResponseType
	Hidden    bool
	Body      *Payload
	Files     []*discordgo.File
	MessageID string
	ChannelID string
}

// RecordingClient is a Client that records every call instead of talking to
// Discord. Errors can be injected per call name to exercise failure paths.
type RecordingClient struct {
	Calls   []RecordedCall
	Errors  map[string]error
	Message *discordgo.Message
}

// NewRecordingClient creates a recording client that returns Message from
// every message-producing call.
func NewRecordingClient() *RecordingClient {
	return &RecordingClient{
		Errors:  make(map[string]error),
		Message: &discordgo.Message{ID: "test-message-123"},
	}
}

// CallNames returns the names of the recorded calls in order.
func (c *RecordingClient) CallNames() []string {
	names := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		names[i] = call.Name
	}
	return names
}

func (c *RecordingClient) record(call RecordedCall) error {
	c.Calls = append(c.Calls, call)
	return c.Errors[call.Name]
}

func (c *RecordingClient) DeferResponse(kind discordgo.InteractionResponseType, hidden bool) error {
	return c.record(RecordedCall{Name: "defer", Kind: kind, Hidden: hidden})
}

func (c *RecordingClient) CreateResponse(body *Payload) error {
	return c.record(RecordedCall{Name: "create", Body: body})
}

func (c *RecordingClient) OriginalResponse() (*discordgo.Message, error) {
	if err := c.record(RecordedCall{Name: "original"}); err != nil {
		return nil, err
	}
	return c.Message, nil
}

func (c *RecordingClient) EditOriginalResponse(body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	if err := c.record(RecordedCall{Name: "editOriginal", Body: body, Files: files}); err != nil {
		return nil, err
	}
	return c.Message, nil
}

func (c *RecordingClient) CreateFollowup(body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	if err := c.record(RecordedCall{Name: "followup", Body: body, Files: files}); err != nil {
		return nil, err
	}
	return c.Message, nil
}

func (c *RecordingClient) EditFollowup(messageID string, body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	if err := c.record(RecordedCall{Name: "editFollowup", MessageID: messageID, Body: body, Files: files}); err != nil {
		return nil, err
	}
	return c.Message, nil
}

func (c *RecordingClient) DeleteOriginalResponse() error {
	return c.record(RecordedCall{Name: "deleteOriginal"})
}

func (c *RecordingClient) DeleteFollowup(messageID string) error {
	return c.record(RecordedCall{Name: "deleteFollowup", MessageID: messageID})
}

func (c *RecordingClient) CreateUpdateResponse(body *Payload) error {
	return c.record(RecordedCall{Name: "update", Body: body})
}

func (c *RecordingClient) EditMessage(channelID, messageID string, body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	if err := c.record(RecordedCall{Name: "editMessage", ChannelID: channelID, MessageID: messageID, Body: body, Files: files}); err != nil {
		return nil, err
	}
	return c.Message, nil
}

// NewTestContext creates a Context wired to the given client, for tests and
// handler development.
func NewTestContext(client Client) *Context {
	return &Context{
		ID:        "test-interaction-123",
		Token:     "test-token",
		ChannelID: "test-channel-123",
		User:      &discordgo.User{ID: "test-user-123"},
		client:    client,
	}
}

// NewTestCommandContext creates a CommandContext wired to the given client.
func NewTestCommandContext(client Client, name string, options map[string]OptionValue) *CommandContext {
	if options == nil {
		options = make(map[string]OptionValue)
	}
	return &CommandContext{
		Context: NewTestContext(client),
		Name:    name,
		Options: options,
	}
}

// NewTestComponentContext creates a ComponentContext wired to the given
// client, hosted on a fake message.
func NewTestComponentContext(client Client, customID string) *ComponentContext {
	return &ComponentContext{
		Context:       NewTestContext(client),
		CustomID:      customID,
		ComponentType: discordgo.ButtonComponent,
		Values:        []string{},
		Message:       &discordgo.Message{ID: "test-host-message-123"},
	}
}
