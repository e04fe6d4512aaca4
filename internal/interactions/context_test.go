package interactions

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFirstWithoutFiles(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	msg, err := ctx.Send(NewResponse("hello"))
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.Equal(t, []string{"create", "original"}, client.CallNames())
	assert.False(t, ctx.IsDeferred())
	assert.True(t, ctx.HasResponded())
}

func TestSendFirstWithFileDefersThenEdits(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	file := &closeCounter{Reader: strings.NewReader("data")}
	_, err := ctx.Send(&Response{
		Content: "here you go",
		File:    &discordgo.File{Name: "report.txt", Reader: file},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"defer", "editOriginal"}, client.CallNames())
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, client.Calls[0].Kind)
	assert.Len(t, client.Calls[1].Files, 1)
	assert.Equal(t, "report.txt", client.Calls[1].Files[0].Name)

	assert.True(t, ctx.IsDeferred())
	assert.True(t, ctx.HasResponded())
	assert.Equal(t, 1, file.closes)
}

func TestSendAfterDeferEditsOriginal(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	require.NoError(t, ctx.Defer(true))
	assert.True(t, client.Calls[0].Hidden)

	_, err := ctx.Send(NewResponse("done"))
	require.NoError(t, err)

	assert.Equal(t, []string{"defer", "editOriginal"}, client.CallNames())
	assert.True(t, ctx.HasResponded())
}

func TestSendAfterRespondedIsAlwaysFollowup(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	_, err := ctx.Send(NewResponse("first"))
	require.NoError(t, err)

	_, err = ctx.Send(NewResponse("second"))
	require.NoError(t, err)
	_, err = ctx.Send(NewResponse("third"))
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "original", "followup", "followup"}, client.CallNames())
	assert.False(t, ctx.IsDeferred())
	assert.True(t, ctx.HasResponded())
}

func TestSendHiddenSetsEphemeralFlag(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	_, err := ctx.Send(NewHiddenResponse("secret"))
	require.NoError(t, err)

	require.Equal(t, "create", client.Calls[0].Name)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, client.Calls[0].Body.Flags)
}

func TestSendInvalidArgumentMakesNoCalls(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	_, err := ctx.Send(&Response{
		File:  &discordgo.File{Name: "a.txt"},
		Files: []*discordgo.File{{Name: "b.txt"}},
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, client.Calls)
	assert.False(t, ctx.HasResponded())
}

func TestSendFailureAfterDeferKeepsDeferredState(t *testing.T) {
	client := NewRecordingClient()
	client.Errors["editOriginal"] = errors.New("boom")
	ctx := NewTestContext(client)

	file := &closeCounter{Reader: strings.NewReader("data")}
	_, err := ctx.Send(&Response{
		File: &discordgo.File{Name: "a.txt", Reader: file},
	})
	require.Error(t, err)

	// The acknowledgement went out, so a retried send must take the edit
	// path rather than posting a second initial response.
	assert.True(t, ctx.IsDeferred())
	assert.False(t, ctx.HasResponded())
	assert.Equal(t, 1, file.closes)

	client.Errors = map[string]error{}
	_, err = ctx.Send(NewResponse("retry"))
	require.NoError(t, err)
	assert.Equal(t, "editOriginal", client.Calls[len(client.Calls)-1].Name)
}

func TestTransportErrorsPropagateUnmodified(t *testing.T) {
	client := NewRecordingClient()
	sentinel := errors.New("discord is down")
	client.Errors["create"] = sentinel
	ctx := NewTestContext(client)

	_, err := ctx.Send(NewResponse("hello"))
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, ctx.HasResponded())
}

func TestEditRoutesBySentinel(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	_, err := ctx.Edit(OriginalMessage, NewResponse("edited"))
	require.NoError(t, err)
	assert.Equal(t, "editOriginal", client.Calls[0].Name)

	_, err = ctx.Edit("456", NewResponse("edited"))
	require.NoError(t, err)
	assert.Equal(t, "editFollowup", client.Calls[1].Name)
	assert.Equal(t, "456", client.Calls[1].MessageID)

	// Routing is independent of lifecycle state
	assert.False(t, ctx.IsDeferred())
	assert.False(t, ctx.HasResponded())
}

func TestDeleteRoutesBySentinel(t *testing.T) {
	client := NewRecordingClient()
	ctx := NewTestContext(client)

	require.NoError(t, ctx.Delete(OriginalMessage))
	require.NoError(t, ctx.Delete("789"))

	assert.Equal(t, []string{"deleteOriginal", "deleteFollowup"}, client.CallNames())
	assert.Equal(t, "789", client.Calls[1].MessageID)
}

func TestEditReleasesFilesOnFailure(t *testing.T) {
	client := NewRecordingClient()
	client.Errors["editFollowup"] = errors.New("boom")
	ctx := NewTestContext(client)

	file := &closeCounter{Reader: strings.NewReader("data")}
	_, err := ctx.Edit("123", &Response{
		File: &discordgo.File{Name: "a.txt", Reader: file},
	})
	require.Error(t, err)
	assert.Equal(t, 1, file.closes)
}

func TestNewContextExtractsIdentity(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}
	member := &discordgo.Member{User: &discordgo.User{ID: "user-1", Username: "alice"}}

	ctx := NewContext(session, &discordgo.Interaction{
		ID:        "1234",
		Token:     "tok",
		Version:   1,
		Type:      discordgo.InteractionApplicationCommand,
		AppID:     "app-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Member:    member,
	})

	assert.Equal(t, "1234", ctx.ID)
	assert.Equal(t, "tok", ctx.Token)
	assert.Equal(t, "app-1", ctx.ApplicationID)
	assert.Equal(t, "guild-1", ctx.GuildID)
	assert.Equal(t, member, ctx.Member)
	require.NotNil(t, ctx.Author())
	assert.Equal(t, "alice", ctx.Author().Username)
	assert.False(t, ctx.IsDeferred())
	assert.False(t, ctx.HasResponded())
}

func TestNewContextBareUserOutsideGuild(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}

	ctx := NewContext(session, &discordgo.Interaction{
		ID:        "1234",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "dm-1",
		User:      &discordgo.User{ID: "user-2"},
	})

	assert.Nil(t, ctx.Member)
	require.NotNil(t, ctx.User)
	assert.Equal(t, "user-2", ctx.User.ID)
}
