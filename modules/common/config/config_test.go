package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/ai", cfg.APIPrefix)
	assert.Equal(t, ChatProviderOpenAI, cfg.ChatProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, ImageProviderReplicate, cfg.ImageProvider)
	assert.Equal(t, 120*time.Second, cfg.ImageCallTimeout)
	assert.Equal(t, 2*time.Second, cfg.ImageRetryBaseDelay)
	assert.True(t, cfg.IsProduction())
}

func TestLoadNormalizesLists(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("API_PREFIX", "api/")
	t.Setenv("FRONTEND_ORIGINS", "http://localhost:3000, ,https://stylo.app")
	t.Setenv("GEMINI_API_KEYS", "k1, k2,")
	t.Setenv("CHAT_PROVIDER", " Gemini ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, []string{"http://localhost:3000", "https://stylo.app"}, cfg.FrontendOrigins)
	assert.Equal(t, []string{"k1", "k2"}, cfg.GeminiAPIKeys)
	assert.Equal(t, ChatProviderGemini, cfg.ChatProvider)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("IMAGE_PROVIDER", "midjourney")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMAGE_PROVIDER")
}

func TestImageCredentialFollowsProvider(t *testing.T) {
	cfg := &Config{
		ImageProvider:     ImageProviderReplicate,
		ReplicateAPIToken: "r8_token",
		ReplicateModel:    " owner/model ",
		RunwareAPIKey:     "rw_key",
		RunwareModel:      "runware:100@1",
	}
	assert.Equal(t, "r8_token", cfg.ImageCredential())
	assert.Equal(t, "owner/model", cfg.ImageModelOverride())

	cfg.ImageProvider = ImageProviderRunware
	assert.Equal(t, "rw_key", cfg.ImageCredential())
	assert.Equal(t, "runware:100@1", cfg.ImageModelOverride())
}
