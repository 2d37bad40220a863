// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package llm talks to a local language model endpoint.
//
// Two backends implement Generator: a native Ollama client speaking
// /api/generate, and an OpenAI-compatible client for anything that
// exposes the chat-completions surface (Ollama itself does, under
// /v1). Callers hold the interface and never know which one they got.
//
// All analysis is advisory text layered on top of deterministic
// scoring. A generation failure degrades the user experience; it
// never changes a score, a classification, or a stored record.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vantagegrc/vantage/pkg/logging"
)

// Generator produces completion text for a prompt.
type Generator interface {
	// Generate returns the model's completion for prompt. model may
	// be empty to use the client's default.
	Generate(ctx context.Context, model, prompt string) (string, error)

	// Verify checks that the endpoint is reachable and returns the
	// model names it serves.
	Verify(ctx context.Context) ([]string, error)
}

// =============================================================================
// RetryPolicy
// =============================================================================

// RetryPolicy configures exponential backoff for generation calls.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt; it doubles
	// on every further attempt up to MaxDelay.
	InitialDelay time.Duration

	// MaxDelay caps the backoff.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the standard policy: 3 attempts, 2s
// initial delay, doubling, capped at 30s.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
	}
}

// Delay computes the wait before attempt n (1-based; attempt 1 has no
// delay).
func (p *RetryPolicy) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	d := p.InitialDelay
	for i := 2; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// =============================================================================
// Retrying wrapper
// =============================================================================

// Retrying wraps a Generator with the retry policy. Connection
// errors and 5xx generation errors are retried; 4xx generation
// errors fail immediately. When all attempts fail, the returned
// error aggregates every attempt's failure so the operator sees the
// whole story, not just the last symptom.
type Retrying struct {
	inner  Generator
	policy *RetryPolicy
	log    *logging.Logger

	// sleep is swappable for tests.
	sleep func(context.Context, time.Duration) error
}

// WithRetry wraps gen. A nil policy uses DefaultRetryPolicy.
func WithRetry(gen Generator, policy *RetryPolicy, log *logging.Logger) *Retrying {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	if log == nil {
		log = logging.Default()
	}
	return &Retrying{inner: gen, policy: policy, log: log, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryable(err error) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Retryable()
	}
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// Generate runs the inner generator under the retry policy.
func (r *Retrying) Generate(ctx context.Context, model, prompt string) (string, error) {
	var attemptErrs []error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if err := r.sleep(ctx, r.policy.Delay(attempt)); err != nil {
			attemptErrs = append(attemptErrs, err)
			break
		}

		text, err := r.inner.Generate(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		attemptErrs = append(attemptErrs, fmt.Errorf("attempt %d: %w", attempt, err))

		if !retryable(err) {
			r.log.Debug("generation error is not retryable", "attempt", attempt, "error", err)
			break
		}
		if attempt < r.policy.MaxAttempts {
			r.log.Warn("generation attempt failed, retrying",
				"attempt", attempt, "next_delay", r.policy.Delay(attempt+1).String(), "error", err)
		}
	}

	return "", fmt.Errorf("llm: all attempts failed: %w", errors.Join(attemptErrs...))
}

// Verify delegates to the inner generator without retry; a
// reachability probe should answer fast and honestly.
func (r *Retrying) Verify(ctx context.Context) ([]string, error) {
	return r.inner.Verify(ctx)
}
