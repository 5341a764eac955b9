package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the survey notifier. The core
// pipeline receives these values through explicit constructors rather than
// reading the environment itself.
type Config struct {
	App        AppConfig
	SMTP       SMTPConfig
	Attachment AttachmentConfig
	Sheets     SheetsConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	Port     int
	LogLevel string
}

// SMTPConfig stores SMTP credentials for the confirmation email transport.
// From doubles as the fallback recipient when a submission carries an
// implausible address.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// AttachmentConfig bounds the signature image download.
type AttachmentConfig struct {
	Timeout       time.Duration
	MaxBytes      int64
	MaxConcurrent int64
}

// SheetsConfig identifies the ledger spreadsheet. When CredentialsFile or
// SpreadsheetID is empty the service runs with ledger mirroring disabled.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	AppendRange     string
}

// Enabled reports whether enough configuration is present to talk to the
// ledger store.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsFile != "" && s.SpreadsheetID != ""
}

// Load reads environment variables, applies defaults, validates required
// values and returns a populated Config instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.Port = ldr.getInt("APP_PORT", 10000, false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.SMTP.Host = ldr.getString("SMTP_HOST", "", true)
	cfg.SMTP.Port = ldr.getInt("SMTP_PORT", 0, true)
	cfg.SMTP.User = ldr.getString("SMTP_USER", "", true)
	cfg.SMTP.Pass = ldr.getString("SMTP_PASS", "", true)
	cfg.SMTP.From = ldr.getString("SMTP_FROM", "", true)

	cfg.Attachment.Timeout = time.Duration(ldr.getInt("ATTACHMENT_TIMEOUT_SECONDS", 10, false)) * time.Second
	cfg.Attachment.MaxBytes = int64(ldr.getInt("ATTACHMENT_MAX_BYTES", 10<<20, false))
	cfg.Attachment.MaxConcurrent = int64(ldr.getInt("ATTACHMENT_MAX_CONCURRENT", 4, false))

	cfg.Sheets.CredentialsFile = ldr.getString("SHEETS_CREDENTIALS_FILE", "", false)
	cfg.Sheets.SpreadsheetID = ldr.getString("SHEETS_SPREADSHEET_ID", "", false)
	cfg.Sheets.AppendRange = ldr.getString("SHEETS_RANGE", "Submissions!A:I", false)

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			l.addError(fmt.Sprintf("%s must be a valid integer", key))
			return def
		}
		return i
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
