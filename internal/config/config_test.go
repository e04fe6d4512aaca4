package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_APP_ID", "app-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "app-1")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("BOT_OWNER_IDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Empty(t, cfg.Permission.Owners)
}

func TestLoadPermissionLists(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "app-1")
	t.Setenv("BOT_OWNER_IDS", "111, 222")
	t.Setenv("BOT_SUBOWNER_IDS", "333,,444")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"111", "222"}, cfg.Permission.Owners)
	assert.Equal(t, []string{"333", "444"}, cfg.Permission.SubOwners)
}
