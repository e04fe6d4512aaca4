package interactions

import (
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Client names the outbound calls the response lifecycle can make for one
// interaction. The production implementation talks to Discord through the
// session's request layer; tests swap in a RecordingClient.
type Client interface {
	// DeferResponse posts a deferred acknowledgement of the given kind
	DeferResponse(kind discordgo.InteractionResponseType, hidden bool) error

	// CreateResponse posts the initial message response
	CreateResponse(body *Payload) error

	// OriginalResponse fetches the message created by the initial response
	OriginalResponse() (*discordgo.Message, error)

	// EditOriginalResponse edits the initial response (or the deferred placeholder)
	EditOriginalResponse(body *Payload, files []*discordgo.File) (*discordgo.Message, error)

	// CreateFollowup posts an additional message after the initial response
	CreateFollowup(body *Payload, files []*discordgo.File) (*discordgo.Message, error)

	// EditFollowup edits a follow-up message by id
	EditFollowup(messageID string, body *Payload, files []*discordgo.File) (*discordgo.Message, error)

	// DeleteOriginalResponse deletes the initial response
	DeleteOriginalResponse() error

	// DeleteFollowup deletes a follow-up message by id
	DeleteFollowup(messageID string) error

	// CreateUpdateResponse posts the initial component-update response
	CreateUpdateResponse(body *Payload) error

	// EditMessage edits an arbitrary channel message
	EditMessage(channelID, messageID string, body *Payload, files []*discordgo.File) (*discordgo.Message, error)
}

// restClient implements Client against Discord's interaction endpoints,
// reusing the session's request layer for auth and rate-limit handling.
type restClient struct {
	session       *discordgo.Session
	interactionID string
	token         string
	applicationID string
}

func newRESTClient(s *discordgo.Session, i *discordgo.Interaction) *restClient {
	return &restClient{
		session:       s,
		interactionID: i.ID,
		token:         i.Token,
		applicationID: i.AppID,
	}
}

func (c *restClient) DeferResponse(kind discordgo.InteractionResponseType, hidden bool) error {
	response := &interactionResponse{Type: kind}
	if hidden {
		response.Data = &Payload{Flags: discordgo.MessageFlagsEphemeral}
	}

	endpoint := discordgo.EndpointInteractionResponse(c.interactionID, c.token)
	_, err := c.session.RequestWithBucketID("POST", endpoint, response, endpoint)
	return err
}

func (c *restClient) CreateResponse(body *Payload) error {
	response := &interactionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: body,
	}

	endpoint := discordgo.EndpointInteractionResponse(c.interactionID, c.token)
	_, err := c.session.RequestWithBucketID("POST", endpoint, response, endpoint)
	return err
}

func (c *restClient) OriginalResponse() (*discordgo.Message, error) {
	endpoint := discordgo.EndpointInteractionResponseActions(c.applicationID, c.token)

	raw, err := c.session.RequestWithBucketID("GET", endpoint, nil, endpoint)
	if err != nil {
		return nil, err
	}
	return unmarshalMessage(raw)
}

func (c *restClient) EditOriginalResponse(body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	endpoint := discordgo.EndpointInteractionResponseActions(c.applicationID, c.token)

	raw, err := c.do("PATCH", endpoint, endpoint, body, files)
	if err != nil {
		return nil, err
	}
	return unmarshalMessage(raw)
}

func (c *restClient) CreateFollowup(body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	endpoint := discordgo.EndpointFollowupMessage(c.applicationID, c.token)

	raw, err := c.do("POST", endpoint, endpoint, body, files)
	if err != nil {
		return nil, err
	}
	return unmarshalMessage(raw)
}

func (c *restClient) EditFollowup(messageID string, body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	endpoint := discordgo.EndpointFollowupMessageActions(c.applicationID, c.token, messageID)
	bucket := discordgo.EndpointFollowupMessageActions(c.applicationID, c.token, "")

	raw, err := c.do("PATCH", endpoint, bucket, body, files)
	if err != nil {
		return nil, err
	}
	return unmarshalMessage(raw)
}

func (c *restClient) DeleteOriginalResponse() error {
	endpoint := discordgo.EndpointInteractionResponseActions(c.applicationID, c.token)

	_, err := c.session.RequestWithBucketID("DELETE", endpoint, nil, endpoint)
	return err
}

func (c *restClient) DeleteFollowup(messageID string) error {
	endpoint := discordgo.EndpointFollowupMessageActions(c.applicationID, c.token, messageID)
	bucket := discordgo.EndpointFollowupMessageActions(c.applicationID, c.token, "")

	_, err := c.session.RequestWithBucketID("DELETE", endpoint, nil, bucket)
	return err
}

func (c *restClient) CreateUpdateResponse(body *Payload) error {
	response := &interactionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: body,
	}

	endpoint := discordgo.EndpointInteractionResponse(c.interactionID, c.token)
	_, err := c.session.RequestWithBucketID("POST", endpoint, response, endpoint)
	return err
}

func (c *restClient) EditMessage(channelID, messageID string, body *Payload, files []*discordgo.File) (*discordgo.Message, error) {
	endpoint := discordgo.EndpointChannelMessage(channelID, messageID)
	bucket := discordgo.EndpointChannelMessage(channelID, "")

	raw, err := c.do("PATCH", endpoint, bucket, body, files)
	if err != nil {
		return nil, err
	}
	return unmarshalMessage(raw)
}

// do issues one request, switching to a multipart body when attachments are
// present. The initial-response endpoint never goes through here; it only
// ever carries JSON.
func (c *restClient) do(method, endpoint, bucket string, body *Payload, files []*discordgo.File) ([]byte, error) {
	if len(files) == 0 {
		return c.session.RequestWithBucketID(method, endpoint, body, bucket)
	}

	contentType, raw, err := encodeMultipart(body, files)
	if err != nil {
		return nil, err
	}
	return c.session.RequestRaw(method, endpoint, contentType, raw, bucket, 0)
}

func unmarshalMessage(raw []byte) (*discordgo.Message, error) {
	var msg discordgo.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &msg, nil
}
