package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("DB_PATH", "")
	t.Setenv("ADMINS", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, "./bot.db", cfg.DBPath)
	assert.Empty(t, cfg.Admins)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestParseAdmins(t *testing.T) {
	admins, err := ParseAdmins("123, 456,789")
	require.NoError(t, err)
	assert.Equal(t, []int64{123, 456, 789}, admins)

	admins, err = ParseAdmins("")
	require.NoError(t, err)
	assert.Empty(t, admins)

	_, err = ParseAdmins("123,abc")
	require.Error(t, err)
}
