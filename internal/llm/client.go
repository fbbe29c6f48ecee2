// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the Groq chat-completion API behind a small client so
// the expansion and synthesis stages share one transport. Groq exposes an
// OpenAI-compatible endpoint, so the client is built on go-openai with the
// base URL pointed at Groq.
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

// groqBaseURL is the Groq OpenAI-compatible endpoint. Package-level var so
// tests can substitute an httptest server.
var groqBaseURL = "https://api.groq.com/openai/v1"

// callTimeout bounds every chat call; a hung backend blocks only this long.
const callTimeout = 30 * time.Second

// Request is one chat completion: optional system instructions plus a user
// prompt. Zero-value Model, Temperature, and MaxTokens fall back to the
// client defaults.
type Request struct {
	System      string
	User        string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Client calls the Groq chat API with fixed defaults from configuration.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewClient builds a Groq client from AI configuration. The caller is
// responsible for checking that an API key is configured; a client built
// without one will fail at call time.
func NewClient(cfg types.AIConfig) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = groqBaseURL

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 700
	}

	return &Client{
		api:         openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}
}

// Complete issues one chat completion and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
