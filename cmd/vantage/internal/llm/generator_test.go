// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vantagegrc/vantage/pkg/logging"
)

// scriptedGenerator fails with errs[i] on call i, then succeeds.
type scriptedGenerator struct {
	errs  []error
	calls int
}

func (s *scriptedGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	defer func() { s.calls++ }()
	if s.calls < len(s.errs) {
		return "", s.errs[s.calls]
	}
	return "ok", nil
}

func (s *scriptedGenerator) Verify(ctx context.Context) ([]string, error) {
	return []string{"llama3:latest"}, nil
}

func retrying(gen Generator) *Retrying {
	r := WithRetry(gen, DefaultRetryPolicy(), logging.Discard())
	r.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return r
}

func TestRetrying_SucceedsAfterTransientFailures(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{
		&ConnectionError{Endpoint: "x", Err: context.DeadlineExceeded},
		&GenerationError{StatusCode: 503, Message: "busy"},
	}}

	text, err := retrying(gen).Generate(context.Background(), "", "p")
	if err != nil {
		t.Fatalf("expected success on third attempt: %v", err)
	}
	if text != "ok" || gen.calls != 3 {
		t.Errorf("text=%q calls=%d", text, gen.calls)
	}
}

func TestRetrying_StopsOnClientError(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{
		&GenerationError{StatusCode: 400, Message: "bad prompt"},
		&GenerationError{StatusCode: 400, Message: "bad prompt"},
	}}

	_, err := retrying(gen).Generate(context.Background(), "", "p")
	if err == nil {
		t.Fatal("expected failure")
	}
	if gen.calls != 1 {
		t.Errorf("4xx must not be retried, got %d calls", gen.calls)
	}
}

func TestRetrying_AggregatesAllAttempts(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{
		&GenerationError{StatusCode: 500, Message: "first failure"},
		&GenerationError{StatusCode: 502, Message: "second failure"},
		&GenerationError{StatusCode: 503, Message: "third failure"},
	}}

	_, err := retrying(gen).Generate(context.Background(), "", "p")
	if err == nil {
		t.Fatal("expected terminal failure after 3 attempts")
	}
	for _, fragment := range []string{"attempt 1", "attempt 2", "attempt 3", "first failure", "third failure"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("aggregated error missing %q: %v", fragment, err)
		}
	}
	if gen.calls != 3 {
		t.Errorf("calls = %d, want 3", gen.calls)
	}
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := &RetryPolicy{MaxAttempts: 5, InitialDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 0},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
	}
	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}

	capped := &RetryPolicy{MaxAttempts: 10, InitialDelay: 20 * time.Second, MaxDelay: 30 * time.Second}
	if got := capped.Delay(4); got != 30*time.Second {
		t.Errorf("Delay should cap at MaxDelay, got %v", got)
	}
}

func TestRetrying_ContextCancelStopsRetries(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{
		&GenerationError{StatusCode: 500, Message: "busy"},
		&GenerationError{StatusCode: 500, Message: "busy"},
	}}
	r := WithRetry(gen, DefaultRetryPolicy(), logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Generate(ctx, "", "p")
	if err == nil {
		t.Fatal("expected failure under cancelled context")
	}
	// First attempt has no delay and runs; the backoff before the
	// second attempt observes the cancelled context.
	if gen.calls != 1 {
		t.Errorf("calls = %d, want 1", gen.calls)
	}
}
