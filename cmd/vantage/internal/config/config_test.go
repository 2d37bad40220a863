// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vantagegrc/vantage/pkg/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_BACKEND", "OLLAMA_URL", "OLLAMA_MODEL", "OLLAMA_TIMEOUT",
		"OPENAI_BASE_URL", "OPENAI_API_KEY",
		"RISK_THRESHOLD_LOW", "RISK_THRESHOLD_MEDIUM", "LOG_LEVEL",
		"DEFAULT_OUTPUT_FORMAT", "DEFAULT_AUDIENCE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Backend != BackendOllama {
		t.Errorf("Backend = %q, want ollama", cfg.Backend)
	}
	if cfg.OllamaURL != "http://localhost:11434/api/generate" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.Model != "llama3:latest" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Thresholds.Low != 4.0 || cfg.Thresholds.Medium != 3.0 {
		t.Errorf("Thresholds = %+v", cfg.Thresholds)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if filepath.Base(cfg.VendorDBPath) != "vendors.json" {
		t.Errorf("VendorDBPath = %q", cfg.VendorDBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_BACKEND", "openai")
	t.Setenv("OLLAMA_MODEL", "mistral:latest")
	t.Setenv("OLLAMA_TIMEOUT", "30")
	t.Setenv("RISK_THRESHOLD_LOW", "4.5")
	t.Setenv("RISK_THRESHOLD_MEDIUM", "2.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendOpenAI {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Model != "mistral:latest" || cfg.Timeout != 30*time.Second {
		t.Errorf("model/timeout = %q/%v", cfg.Model, cfg.Timeout)
	}
	if cfg.Thresholds.Low != 4.5 || cfg.Thresholds.Medium != 2.5 {
		t.Errorf("Thresholds = %+v", cfg.Thresholds)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		setting string
	}{
		{"bad timeout", "OLLAMA_TIMEOUT", "soon", "OLLAMA_TIMEOUT"},
		{"bad threshold", "RISK_THRESHOLD_LOW", "high", "RISK_THRESHOLD_LOW"},
		{"unknown backend", "LLM_BACKEND", "bard", "LLM_BACKEND"},
		{"inverted thresholds", "RISK_THRESHOLD_LOW", "2.0", "RISK_THRESHOLD_LOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(t.TempDir())
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cerr.Setting != tt.setting {
				t.Errorf("Setting = %q, want %q", cerr.Setting, tt.setting)
			}
		})
	}
}

func TestValidate_EqualThresholdsRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("RISK_THRESHOLD_LOW", "3.0")
	t.Setenv("RISK_THRESHOLD_MEDIUM", "3.0")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("equal thresholds must be rejected: the Low band would be empty")
	}
}

func TestEnsureDirectories(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()

	cfg, err := Load(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	for _, dir := range []string{cfg.DataDir, cfg.HistoryDir, cfg.OutputsDir, cfg.LogsDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q not created: %v", dir, err)
		}
	}
}
