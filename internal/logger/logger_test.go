package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fieldops/survey-notifier/internal/logger"
)

func TestNewWritesStructuredLogs(t *testing.T) {
	var buf bytes.Buffer

	log, err := logger.New("production", "info", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"test"`) {
		t.Fatalf("expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	log, err := logger.New("production", "warn", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info().Msg("suppressed")
	log.Warn().Msg("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info log should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Fatalf("warn log missing: %q", out)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := logger.New("production", "shout"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
