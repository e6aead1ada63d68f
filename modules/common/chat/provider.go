package chat

import (
	"context"
	"fmt"

	"stylo-server/modules/common/config"
)

// FromConfig builds the chat client selected by CHAT_PROVIDER.
// A missing credential yields nil; recommendations then use the fallback payload.
func FromConfig(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.ChatProvider {
	case config.ChatProviderGemini:
		if len(cfg.GeminiAPIKeys) == 0 {
			return nil, nil
		}
		return NewGemini(ctx, cfg.GeminiAPIKeys, cfg.GeminiModel)
	case config.ChatProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.ChatProvider)
	}
}
