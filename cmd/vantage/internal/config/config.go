// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads runtime configuration from the environment.
//
// A .env file in the working directory is loaded first (values
// already present in the real environment win), then every setting
// falls back to a usable default, so a fresh checkout runs with zero
// configuration against a local Ollama.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
	"github.com/vantagegrc/vantage/pkg/logging"
)

// Backend selects which LLM client the assistant talks to.
type Backend string

const (
	// BackendOllama uses the native /api/generate client.
	BackendOllama Backend = "ollama"
	// BackendOpenAI uses an OpenAI-compatible chat endpoint.
	BackendOpenAI Backend = "openai"
)

// ConfigError is a fatal configuration problem: the named setting
// holds a value the program cannot start with.
type ConfigError struct {
	Setting string
	Value   string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s=%q: %v", e.Setting, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Config is the resolved runtime configuration. Built once at startup
// and passed down by value or pointer; nothing reads the environment
// after Load returns.
type Config struct {
	// LLM settings.
	Backend       Backend
	OllamaURL     string
	Model         string
	Timeout       time.Duration
	OpenAIBaseURL string
	OpenAIKey     string

	// Risk level thresholds. ThresholdLow must stay strictly above
	// ThresholdMedium; a weighted score at or above ThresholdLow
	// classifies as Low risk.
	Thresholds scoring.Thresholds

	// Directory layout.
	DataDir    string
	HistoryDir string
	OutputsDir string
	LogsDir    string

	// VendorDBPath is the registry file, under DataDir.
	VendorDBPath string

	LogLevel logging.Level

	// Output defaults.
	OutputFormat string
	Audience     string
}

// Available LLM models offered by the models command when the
// backend cannot be reached for a live listing.
var FallbackModels = []string{
	"llama3:latest",
	"mistral:latest",
	"qwen3-coder:30b",
}

// Load reads .env (if present), resolves every setting, and
// validates the result. baseDir anchors the relative directory
// layout; empty means the current working directory.
func Load(baseDir string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if baseDir == "" {
		baseDir = "."
	}

	cfg := &Config{
		Backend:       Backend(strings.ToLower(envOr("LLM_BACKEND", string(BackendOllama)))),
		OllamaURL:     envOr("OLLAMA_URL", "http://localhost:11434/api/generate"),
		Model:         envOr("OLLAMA_MODEL", "llama3:latest"),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", "http://localhost:11434/v1"),
		OpenAIKey:     envOr("OPENAI_API_KEY", "ollama"),
		DataDir:       filepath.Join(baseDir, "data"),
		HistoryDir:    filepath.Join(baseDir, "history"),
		OutputsDir:    filepath.Join(baseDir, "outputs"),
		LogsDir:       filepath.Join(baseDir, "logs"),
		OutputFormat:  envOr("DEFAULT_OUTPUT_FORMAT", "excel"),
		Audience:      envOr("DEFAULT_AUDIENCE", "internal"),
	}
	cfg.VendorDBPath = filepath.Join(cfg.DataDir, "vendors.json")

	timeoutSec, err := envInt("OLLAMA_TIMEOUT", 120)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = time.Duration(timeoutSec) * time.Second

	if cfg.Thresholds.Low, err = envFloat("RISK_THRESHOLD_LOW", 4.0); err != nil {
		return nil, err
	}
	if cfg.Thresholds.Medium, err = envFloat("RISK_THRESHOLD_MEDIUM", 3.0); err != nil {
		return nil, err
	}

	cfg.LogLevel = logging.ParseLevel(envOr("LOG_LEVEL", "info"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants. Called by Load; exported
// so tests and callers that build a Config by hand get the same
// checks.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOllama, BackendOpenAI:
	default:
		return &ConfigError{Setting: "LLM_BACKEND", Value: string(c.Backend),
			Err: fmt.Errorf("must be %q or %q", BackendOllama, BackendOpenAI)}
	}
	if c.OllamaURL == "" {
		return &ConfigError{Setting: "OLLAMA_URL", Value: "",
			Err: fmt.Errorf("model endpoint must be set")}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Setting: "OLLAMA_TIMEOUT",
			Value: c.Timeout.String(), Err: fmt.Errorf("must be positive")}
	}
	if c.Thresholds.Low <= c.Thresholds.Medium {
		return &ConfigError{Setting: "RISK_THRESHOLD_LOW",
			Value: fmt.Sprintf("%.2f", c.Thresholds.Low),
			Err: fmt.Errorf("must be strictly greater than RISK_THRESHOLD_MEDIUM (%.2f)",
				c.Thresholds.Medium)}
	}
	return nil
}

// EnsureDirectories creates the data, history, outputs, and logs
// directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.HistoryDir, c.OutputsDir, c.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ConfigError{Setting: "directories", Value: dir, Err: err}
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ConfigError{Setting: key, Value: v, Err: err}
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ConfigError{Setting: key, Value: v, Err: err}
	}
	return f, nil
}
