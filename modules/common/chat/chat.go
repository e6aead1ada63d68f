// Package chat wraps the chat-completion providers behind one small interface.
package chat

import (
	"context"
	"errors"
)

// StylistSystemPrompt is sent as the system message on every recommendation call.
const StylistSystemPrompt = "You are an expert AI fashion stylist that responds only in JSON."

var ErrEmptyResponse = errors.New("chat: empty response")

// Request is one prompt round-trip.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	// JSON asks the provider for a JSON object response.
	JSON bool
}

// Client is implemented by every chat provider.
type Client interface {
	// Complete returns the whole assistant message.
	Complete(ctx context.Context, req Request) (string, error)
	// Stream calls onDelta for each text fragment in arrival order.
	// An error returned by onDelta stops the stream and is returned as-is.
	Stream(ctx context.Context, req Request, onDelta func(string) error) error
}
