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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vantagegrc/vantage/pkg/logging"
)

func openaiTestServer(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(srv.URL+"/v1", "ollama", "llama3:latest", 5*time.Second, logging.Discard())
}

func TestOpenAIClient_Generate(t *testing.T) {
	client := openaiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Two vendors drive most of the exposure."}}]}`))
	})

	text, err := client.Generate(context.Background(), "", "Summarize the portfolio.")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(text, "exposure") {
		t.Errorf("unexpected completion: %q", text)
	}
}

func TestOpenAIClient_Generate_APIError(t *testing.T) {
	client := openaiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
	})

	_, err := client.Generate(context.Background(), "missing:latest", "hello")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", genErr.StatusCode)
	}
	if genErr.Retryable() {
		t.Error("a 404 must not be retryable")
	}
}

func TestOpenAIClient_Generate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := NewOpenAIClient(url+"/v1", "ollama", "llama3:latest", time.Second, logging.Discard())

	_, err := client.Generate(context.Background(), "", "hello")
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
}

func TestOpenAIClient_Verify(t *testing.T) {
	client := openaiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"llama3:latest"},{"id":"mistral:latest"}]}`))
	})

	names, err := client.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(names) != 2 || names[0] != "llama3:latest" {
		t.Errorf("unexpected model list: %v", names)
	}
}
