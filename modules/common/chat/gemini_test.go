package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newRotationGemini(keys int) (*Gemini, *[]time.Duration) {
	var slept []time.Duration
	return &Gemini{
		clients: make([]*genai.Client, keys),
		model:   "gemini-2.5-flash",
		sleep: func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}, &slept
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(errors.New("Error 429, Message: Resource has been exhausted")))
	assert.True(t, isRateLimited(errors.New("Quota exceeded for metric")))
	assert.True(t, isRateLimited(errors.New("RESOURCE_EXHAUSTED")))
	assert.False(t, isRateLimited(errors.New("invalid argument")))
	assert.False(t, isRateLimited(nil))
}

func TestKeyRotationMovesToNextKeyAfterThreeRateLimits(t *testing.T) {
	g, slept := newRotationGemini(2)

	calls := 0
	err := g.withKeyRotation(context.Background(), func(*genai.Client) error {
		calls++
		if calls <= geminiMaxRetriesPerKey {
			return errors.New("429 too many requests")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, geminiMaxRetriesPerKey+1, calls)
	// two waits on the first key, none after its last attempt
	assert.Equal(t, []time.Duration{geminiRetryDelay, geminiRetryDelay}, *slept)
}

func TestKeyRotationReturnsNonRateLimitErrorImmediately(t *testing.T) {
	g, slept := newRotationGemini(3)

	calls := 0
	err := g.withKeyRotation(context.Background(), func(*genai.Client) error {
		calls++
		return errors.New("invalid argument")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept)
}

func TestKeyRotationExhausted(t *testing.T) {
	g, _ := newRotationGemini(2)

	err := g.withKeyRotation(context.Background(), func(*genai.Client) error {
		return errors.New("rate limit")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 Gemini API keys exhausted")
	assert.Contains(t, err.Error(), "rate limit")
}

func TestKeyRotationStopRetryIsNotRetried(t *testing.T) {
	g, _ := newRotationGemini(2)
	gone := errors.New("429 after partial stream")

	calls := 0
	err := g.withKeyRotation(context.Background(), func(*genai.Client) error {
		calls++
		return stopRetry{gone}
	})

	assert.ErrorIs(t, err, gone)
	assert.Equal(t, 1, calls)
}

func TestGeminiConfig(t *testing.T) {
	g, _ := newRotationGemini(1)
	cfg := g.config(Request{System: "sys", MaxTokens: 1500, Temperature: 0.7, JSON: true})

	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	assert.EqualValues(t, 1500, cfg.MaxOutputTokens)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.SystemInstruction)
}

func TestNewGeminiRequiresKeys(t *testing.T) {
	_, err := NewGemini(context.Background(), nil, "gemini-2.5-flash")
	assert.Error(t, err)
}
