// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import "fmt"

// ConnectionError means the model endpoint could not be reached or
// answered with a transport-level failure. Retryable.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("llm: cannot reach %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// GenerationError means the endpoint answered but refused or failed
// the request. Client-side failures (4xx) are never retried: the
// request will not get better by repeating it.
type GenerationError struct {
	Model      string
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm: generation with %s failed (status %d): %s",
			e.Model, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("llm: generation with %s failed: %s", e.Model, e.Message)
}

// Retryable reports whether the failure is worth another attempt.
func (e *GenerationError) Retryable() bool {
	return e.StatusCode < 400 || e.StatusCode >= 500
}
