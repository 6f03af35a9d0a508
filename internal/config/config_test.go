package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.Timeout)
	assert.Equal(t, 50, cfg.Server.ThrottleLimit)
	assert.Equal(t, int64(20<<20), cfg.Server.MaxBodyBytes)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
	assert.Equal(t, "gemini-2.0-pro", cfg.Gemini.RawModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.TextModel)
	assert.Equal(t, 3*time.Minute, cfg.HTTP.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_TEXT_MODEL", "gemini-test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("HTTP_PREFER_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-test", cfg.Gemini.TextModel)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.HTTP.PreferIPv4)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_TIMEOUT", "forever")

	_, err := Load()
	require.Error(t, err)
}
