package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "notifier@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_FROM", "notifier@example.com")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Env != "development" {
		t.Fatalf("unexpected default env: %q", cfg.App.Env)
	}
	if cfg.App.Port != 10000 {
		t.Fatalf("unexpected default port: %d", cfg.App.Port)
	}
	if cfg.Attachment.Timeout != 10*time.Second {
		t.Fatalf("unexpected attachment timeout: %s", cfg.Attachment.Timeout)
	}
	if cfg.Attachment.MaxConcurrent != 4 {
		t.Fatalf("unexpected attachment concurrency: %d", cfg.Attachment.MaxConcurrent)
	}
	if cfg.Sheets.Enabled() {
		t.Fatalf("sheets must be disabled without credentials")
	}
	if cfg.Sheets.AppendRange != "Submissions!A:I" {
		t.Fatalf("unexpected default range: %q", cfg.Sheets.AppendRange)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("ATTACHMENT_TIMEOUT_SECONDS", "3")
	t.Setenv("SHEETS_CREDENTIALS_FILE", "/etc/notifier/sa.json")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Env != "production" || cfg.App.Port != 8080 {
		t.Fatalf("overrides not applied: %+v", cfg.App)
	}
	if cfg.Attachment.Timeout != 3*time.Second {
		t.Fatalf("unexpected attachment timeout: %s", cfg.Attachment.Timeout)
	}
	if !cfg.Sheets.Enabled() {
		t.Fatalf("expected sheets to be enabled")
	}
}

func TestLoadCollectsMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_FROM", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "SMTP_HOST") || !strings.Contains(err.Error(), "SMTP_FROM") {
		t.Fatalf("expected both missing keys reported, got %v", err)
	}
}

func TestLoadRejectsBadInteger(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid integer")
	}
	if !strings.Contains(err.Error(), "SMTP_PORT") {
		t.Fatalf("expected SMTP_PORT reported, got %v", err)
	}
}
