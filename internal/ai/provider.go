// Package ai talks to hosted chat-completion APIs.
package ai

import (
	"context"
	"time"
)

// Message is one role-tagged message of a conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// InferOptions configures a single inference call.
type InferOptions struct {
	Model string `json:"model,omitempty"`
}

// InferResult holds the response of an inference call.
type InferResult struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"inputTokens,omitempty"`
	OutputTokens int    `json:"outputTokens,omitempty"`
}

// Provider is a chat-completion backend.
type Provider interface {
	// Infer sends the conversation and blocks until the full reply arrives.
	Infer(ctx context.Context, system string, messages []Message, opts InferOptions) (*InferResult, error)

	// Name returns the provider identifier.
	Name() string
}

// Factory builds a Provider for an API key. The key is supplied per call so
// it only ever lives in session memory.
type Factory func(apiKey string) Provider

// OpenAIFactory returns a Factory for OpenAI clients using model and timeout.
// A zero timeout leaves the HTTP client without a deadline; an empty baseURL
// selects OpenAIURL.
func OpenAIFactory(model string, timeout time.Duration, baseURL string) Factory {
	return func(apiKey string) Provider {
		p := NewOpenAIProvider(apiKey, model)
		p.client.Timeout = timeout
		if baseURL != "" {
			p.BaseURL = baseURL
		}
		return p
	}
}
