// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vantagegrc/vantage/pkg/logging"
)

// OpenAIClient drives any OpenAI-compatible chat-completions
// endpoint. Pointing BaseURL at Ollama's /v1 surface makes this a
// drop-in alternative to the native client.
type OpenAIClient struct {
	client       *openai.Client
	defaultModel string
	log          *logging.Logger
}

// NewOpenAIClient builds a chat-completions client. baseURL is the
// API root (e.g. "http://localhost:11434/v1"); apiKey may be any
// non-empty string for local endpoints that ignore authentication.
func NewOpenAIClient(baseURL, apiKey, defaultModel string, timeout time.Duration, log *logging.Logger) *OpenAIClient {
	if log == nil {
		log = logging.Default()
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
		log:          log,
	}
}

// Generate sends prompt as a single user message and returns the
// first choice.
func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = c.defaultModel
	}
	c.log.Debug("generating via chat completions", "model", model, "prompt_len", len(prompt))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyOpenAIError(model, err)
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Model: model, Message: "response contained no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Verify lists the models the endpoint serves.
func (c *OpenAIClient) Verify(ctx context.Context) ([]string, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, classifyOpenAIError("", err)
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

// classifyOpenAIError splits SDK errors into the package's
// connection/generation taxonomy so retry logic treats both backends
// the same way.
func classifyOpenAIError(model string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &GenerationError{
			Model:      model,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &GenerationError{
			Model:      model,
			StatusCode: reqErr.HTTPStatusCode,
			Message:    fmt.Sprintf("%v", reqErr.Err),
		}
	}
	return &ConnectionError{Endpoint: "chat completions", Err: err}
}
