// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vantagegrc/vantage/pkg/logging"
)

// OllamaClient speaks the native Ollama API: /api/generate for
// completions, /api/tags for the model list.
type OllamaClient struct {
	httpClient   *http.Client
	generateURL  string
	baseURL      string
	defaultModel string
	log          *logging.Logger
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaClient builds a client for generateURL (the full
// /api/generate endpoint, matching the OLLAMA_URL setting).
func NewOllamaClient(generateURL, defaultModel string, timeout time.Duration, log *logging.Logger) *OllamaClient {
	if log == nil {
		log = logging.Default()
	}
	base := strings.TrimSuffix(strings.TrimSuffix(generateURL, "/api/generate"), "/")
	return &OllamaClient{
		httpClient:   &http.Client{Timeout: timeout},
		generateURL:  generateURL,
		baseURL:      base,
		defaultModel: defaultModel,
		log:          log,
	}
}

// Generate requests a non-streamed completion.
func (c *OllamaClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = c.defaultModel
	}
	c.log.Debug("generating via ollama", "model", model, "prompt_len", len(prompt))

	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ConnectionError{Endpoint: c.generateURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{Endpoint: c.generateURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		if resp.StatusCode == http.StatusNotFound && strings.Contains(msg, "not found") {
			msg = fmt.Sprintf("model %q not found; run: ollama pull %s", model, model)
		}
		return "", &GenerationError{Model: model, StatusCode: resp.StatusCode, Message: msg}
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", &GenerationError{Model: model,
			Message: fmt.Sprintf("unparseable response: %v", err)}
	}
	return genResp.Response, nil
}

// Verify probes /api/tags and returns the installed model names.
func (c *OllamaClient) Verify(ctx context.Context) ([]string, error) {
	tagsURL := c.baseURL + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tagsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build tags request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Endpoint: tagsURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &GenerationError{StatusCode: resp.StatusCode,
			Message: strings.TrimSpace(string(body))}
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, &ConnectionError{Endpoint: tagsURL, Err: err}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
