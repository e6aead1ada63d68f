package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylo-server/modules/common/config"
)

func TestFromConfig(t *testing.T) {
	c, err := FromConfig(context.Background(), &config.Config{ChatProvider: config.ChatProviderOpenAI})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = FromConfig(context.Background(), &config.Config{ChatProvider: config.ChatProviderOpenAI, OpenAIAPIKey: "sk", OpenAIModel: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)

	c, err = FromConfig(context.Background(), &config.Config{ChatProvider: config.ChatProviderGemini, GeminiAPIKeys: []string{"k"}, GeminiModel: "gemini-2.5-flash"})
	require.NoError(t, err)
	assert.IsType(t, &Gemini{}, c)

	_, err = FromConfig(context.Background(), &config.Config{ChatProvider: "claude"})
	assert.Error(t, err)
}
