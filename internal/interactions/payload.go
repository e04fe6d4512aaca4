package interactions

import (
	"github.com/bwmarrin/discordgo"
)

// Response holds the optional fields a caller can attach to an interaction
// reply. Embed/Embeds and File/Files are mutually exclusive pairs; setting
// both members of a pair fails validation with ErrInvalidArgument.
type Response struct {
	// Text content of the response
	Content string

	// TTS (text-to-speech) flag
	TTS bool

	// Single embed, wrapped into Embeds during normalization
	Embed *discordgo.MessageEmbed

	// Discord embeds, order preserved on the wire
	Embeds []*discordgo.MessageEmbed

	// Single attachment, wrapped into Files during normalization
	File *discordgo.File

	// File attachments, order preserved on the wire
	Files []*discordgo.File

	// Whether this response is only visible to the invoking user
	Hidden bool

	// Allowed mentions configuration
	AllowedMentions *discordgo.MessageAllowedMentions

	// Interactive component rows (buttons, select menus, etc)
	Components []discordgo.MessageComponent
}

// NewResponse creates a new response with the given content.
func NewResponse(content string) *Response {
	return &Response{
		Content: content,
	}
}

// NewHiddenResponse creates a new response visible only to the invoker.
func NewHiddenResponse(content string) *Response {
	return &Response{
		Content: content,
		Hidden:  true,
	}
}

// WithEmbeds adds embeds to the response.
func (r *Response) WithEmbeds(embeds ...*discordgo.MessageEmbed) *Response {
	r.Embeds = embeds
	return r
}

// WithComponents adds component rows to the response.
func (r *Response) WithComponents(components ...discordgo.MessageComponent) *Response {
	r.Components = components
	return r
}

// WithFiles adds file attachments to the response.
func (r *Response) WithFiles(files ...*discordgo.File) *Response {
	r.Files = files
	return r
}

// AsHidden sets the response to be visible only to the invoker.
func (r *Response) AsHidden() *Response {
	r.Hidden = true
	return r
}

// validate rejects mutually exclusive field pairs. It runs before payload
// construction so no network call is attempted for a bad response.
func (r *Response) validate() error {
	if r.File != nil && r.Files != nil {
		return invalidArgument("file", "files")
	}
	if r.Embed != nil && r.Embeds != nil {
		return invalidArgument("embed", "embeds")
	}
	return nil
}

// files returns the normalized attachment list.
func (r *Response) files() []*discordgo.File {
	if r.File != nil {
		return []*discordgo.File{r.File}
	}
	return r.Files
}

// embeds returns the normalized embed list.
func (r *Response) embeds() []*discordgo.MessageEmbed {
	if r.Embed != nil {
		return []*discordgo.MessageEmbed{r.Embed}
	}
	return r.Embeds
}

// Payload is the wire form of a response. Unset fields are omitted from the
// serialized body entirely; a hidden response carries the ephemeral bit in
// Flags instead of a dedicated field.
type Payload struct {
	Content         string                            `json:"content,omitempty"`
	TTS             bool                              `json:"tts,omitempty"`
	Embeds          []*discordgo.MessageEmbed         `json:"embeds,omitempty"`
	AllowedMentions *discordgo.MessageAllowedMentions `json:"allowed_mentions,omitempty"`
	Flags           discordgo.MessageFlags            `json:"flags,omitempty"`
	Components      []discordgo.MessageComponent      `json:"components,omitempty"`
}

// body builds the full send payload.
func (r *Response) body() *Payload {
	p := &Payload{
		Content:         r.Content,
		TTS:             r.TTS,
		Embeds:          r.embeds(),
		AllowedMentions: r.AllowedMentions,
		Components:      r.Components,
	}

	if r.Hidden {
		p.Flags = discordgo.MessageFlagsEphemeral
	}

	return p
}

// editBody builds the payload for edits. TTS and visibility are fixed at
// send time and never part of an edit.
func (r *Response) editBody() *Payload {
	return &Payload{
		Content:         r.Content,
		Embeds:          r.embeds(),
		AllowedMentions: r.AllowedMentions,
		Components:      r.Components,
	}
}

// updateBody builds the payload for component updates. The visibility of the
// hosting message is fixed, so the ephemeral flag is never carried.
func (r *Response) updateBody() *Payload {
	return &Payload{
		Content:         r.Content,
		TTS:             r.TTS,
		Embeds:          r.embeds(),
		AllowedMentions: r.AllowedMentions,
		Components:      r.Components,
	}
}

// interactionResponse is the callback envelope posted to the interaction
// response endpoint.
type interactionResponse struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data *Payload                          `json:"data,omitempty"`
}
