package interactions

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func componentInteraction(data discordgo.MessageComponentInteractionData) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "1234",
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "channel-1",
		Data:      data,
		Message:   &discordgo.Message{ID: "host-1"},
	}
}

func TestComponentContextParsesClick(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}

	ctx := NewComponentContext(session, componentInteraction(discordgo.MessageComponentInteractionData{
		CustomID:      "ban:confirm:user-1",
		ComponentType: discordgo.ButtonComponent,
	}))

	assert.Equal(t, "ban:confirm:user-1", ctx.CustomID)
	assert.Equal(t, discordgo.ButtonComponent, ctx.ComponentType)
	assert.Empty(t, ctx.Values)
	require.NotNil(t, ctx.Message)
	assert.Equal(t, "host-1", ctx.Message.ID)
}

func TestComponentContextSelectValues(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}

	ctx := NewComponentContext(session, componentInteraction(discordgo.MessageComponentInteractionData{
		CustomID:      "pick:color",
		ComponentType: discordgo.SelectMenuComponent,
		Values:        []string{"red", "blue"},
	}))

	assert.Equal(t, []string{"red", "blue"}, ctx.Values)
}

func TestUpdateFreshUsesComponentResponse(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestComponentContext(client, "ban:confirm")

	require.NoError(t, ctx.Update(NewResponse("confirmed")))

	assert.Equal(t, []string{"update"}, client.CallNames())
	assert.True(t, ctx.HasResponded())
}

func TestUpdateAfterDeferEditsHostMessage(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestComponentContext(client, "ban:confirm")

	require.NoError(t, ctx.DeferUpdate(false))
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, client.Calls[0].Kind)

	require.NoError(t, ctx.Update(NewResponse("confirmed")))

	require.Equal(t, []string{"defer", "editMessage"}, client.CallNames())
	assert.Equal(t, ctx.ChannelID, client.Calls[1].ChannelID)
	assert.Equal(t, ctx.Message.ID, client.Calls[1].MessageID)
	assert.True(t, ctx.HasResponded())
}

func TestUpdateWithFileDefersFirst(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestComponentContext(client, "report:attach")

	file := &closeCounter{Reader: strings.NewReader("data")}
	err := ctx.Update(&Response{
		File: &discordgo.File{Name: "report.txt", Reader: file},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"defer", "editMessage"}, client.CallNames())
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, client.Calls[0].Kind)
	assert.Len(t, client.Calls[1].Files, 1)
	assert.Equal(t, 1, file.closes)
}

func TestUpdateAfterRespondedIsFollowup(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestComponentContext(client, "ban:confirm")

	require.NoError(t, ctx.Update(NewResponse("first")))
	require.NoError(t, ctx.Update(NewResponse("second")))

	assert.Equal(t, []string{"update", "followup"}, client.CallNames())
}

func TestUpdateInvalidArgumentMakesNoCalls(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestComponentContext(client, "ban:confirm")

	err := ctx.Update(&Response{
		Embed:  &discordgo.MessageEmbed{Title: "a"},
		Embeds: []*discordgo.MessageEmbed{{Title: "b"}},
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, client.Calls)
}

func TestUpdateReleasesFilesOnFailure(t *testing.T) {
	client := NewRecordingClient()
	client.Errors["editMessage"] = errors.New("boom")
	ctx := NewTestComponentContext(client, "report:attach")

	file := &closeCounter{Reader: strings.NewReader("data")}
	err := ctx.Update(&Response{
		File: &discordgo.File{Name: "report.txt", Reader: file},
	})
	require.Error(t, err)
	assert.Equal(t, 1, file.closes)
	assert.True(t, ctx.IsDeferred())
	assert.False(t, ctx.HasResponded())
}
