package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomIDRoundTrip(t *testing.T) {
	encoded, err := NewCustomID("ban", "confirm", "user-1", "spamming").Encode()
	require.NoError(t, err)
	assert.Equal(t, "ban:confirm:user-1:spamming", encoded)

	id, err := ParseCustomID(encoded)
	require.NoError(t, err)
	assert.Equal(t, "ban", id.Domain)
	assert.Equal(t, "confirm", id.Action)
	assert.Equal(t, "user-1", id.Arg(0))
	assert.Equal(t, "spamming", id.Arg(1))
	assert.Equal(t, "", id.Arg(2))
}

func TestCustomIDEncodeValidation(t *testing.T) {
	_, err := NewCustomID("", "confirm").Encode()
	assert.Error(t, err)

	_, err = NewCustomID("ban", "confirm", strings.Repeat("x", maxCustomIDLength)).Encode()
	assert.Error(t, err)
}

func TestParseCustomIDRejectsBareValue(t *testing.T) {
	_, err := ParseCustomID("ban")
	assert.Error(t, err)
}
