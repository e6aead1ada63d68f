package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const (
	geminiMaxRetriesPerKey = 3
	geminiRetryDelay       = 2 * time.Second
)

// Gemini is a chat client over the Gemini API that rotates through API keys
// when a key is rate limited.
type Gemini struct {
	clients []*genai.Client
	model   string
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewGemini(ctx context.Context, apiKeys []string, model string) (*Gemini, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no Gemini API keys provided")
	}

	clients := make([]*genai.Client, 0, len(apiKeys))
	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create Gemini client for key #%d: %w", i+1, err)
		}
		clients = append(clients, client)
	}

	return &Gemini{clients: clients, model: model, sleep: sleepCtx}, nil
}

func (g *Gemini) config(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	var text string
	err := g.withKeyRotation(ctx, func(client *genai.Client) error {
		resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), g.config(req))
		if err != nil {
			return err
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *Gemini) Stream(ctx context.Context, req Request, onDelta func(string) error) error {
	emitted := false
	return g.withKeyRotation(ctx, func(client *genai.Client) error {
		for resp, err := range client.Models.GenerateContentStream(ctx, g.model, genai.Text(req.Prompt), g.config(req)) {
			if err != nil {
				if emitted {
					// fragments already went out; retrying would duplicate them
					return stopRetry{err}
				}
				return err
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			emitted = true
			if err := onDelta(text); err != nil {
				return stopRetry{err}
			}
		}
		return nil
	})
}

type stopRetry struct{ err error }

func (s stopRetry) Error() string { return s.err.Error() }
func (s stopRetry) Unwrap() error { return s.err }

// withKeyRotation - 429 에러 시 같은 키로 최대 3번, 그 다음 키로 넘어감
func (g *Gemini) withKeyRotation(ctx context.Context, call func(*genai.Client) error) error {
	logger := log.Ctx(ctx)
	var lastErr error

	for keyIndex, client := range g.clients {
		for attempt := 1; attempt <= geminiMaxRetriesPerKey; attempt++ {
			err := call(client)
			if err == nil {
				if keyIndex > 0 || attempt > 1 {
					logger.Info().Int("key", keyIndex+1).Int("attempt", attempt).Msg("✅ [Gemini] succeeded after retry")
				}
				return nil
			}

			var stop stopRetry
			if errors.As(err, &stop) {
				return stop.err
			}
			lastErr = err

			// 429가 아닌 에러는 바로 반환
			if !isRateLimited(err) {
				return fmt.Errorf("gemini request failed: %w", err)
			}

			logger.Warn().
				Int("key", keyIndex+1).
				Int("attempt", attempt).
				Msg("⚠️  [Gemini] key hit rate limit")

			if attempt < geminiMaxRetriesPerKey {
				if err := g.sleep(ctx, geminiRetryDelay); err != nil {
					return err
				}
			}
		}
		logger.Warn().Int("key", keyIndex+1).Msg("⚠️  [Gemini] key exhausted, trying next key")
	}

	return fmt.Errorf("all %d Gemini API keys exhausted (%d attempts each), last error: %w",
		len(g.clients), geminiMaxRetriesPerKey, lastErr)
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
