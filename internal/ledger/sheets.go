package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/fieldops/survey-notifier/internal/config"
	"github.com/fieldops/survey-notifier/internal/models"
)

// SheetsOption customises the Sheets recorder.
type SheetsOption func(*SheetsRecorder)

// WithClock replaces the clock used for the row timestamp.
func WithClock(now func() time.Time) SheetsOption {
	return func(r *SheetsRecorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithValuesAppender swaps the append call, which lets tests avoid a real
// Sheets backend.
func WithValuesAppender(appender ValuesAppender) SheetsOption {
	return func(r *SheetsRecorder) {
		if appender != nil {
			r.appender = appender
		}
	}
}

// ValuesAppender is the slice of the Sheets API the recorder depends on.
type ValuesAppender interface {
	Append(ctx context.Context, spreadsheetID, appendRange string, values *sheets.ValueRange) error
}

// SheetsRecorder appends one row per submission to a Google Sheets
// spreadsheet using a service-account credential.
type SheetsRecorder struct {
	logger        zerolog.Logger
	appender      ValuesAppender
	spreadsheetID string
	appendRange   string
	now           func() time.Time
}

// NewSheetsRecorder builds a recorder from service-account credentials on
// disk. The credential file is read once at construction.
func NewSheetsRecorder(ctx context.Context, cfg config.SheetsConfig, logger zerolog.Logger, opts ...SheetsOption) (*SheetsRecorder, error) {
	if !cfg.Enabled() {
		return nil, errors.New("sheets recorder: credentials file and spreadsheet id are required")
	}

	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	r := &SheetsRecorder{
		logger:        logger,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.AppendRange,
		now:           time.Now,
	}
	if strings.TrimSpace(r.appendRange) == "" {
		r.appendRange = "Submissions!A:I"
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if r.appender == nil {
		creds, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("sheets recorder: read credentials: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets recorder: parse credentials: %w", err)
		}
		svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
		if err != nil {
			return nil, fmt.Errorf("sheets recorder: init service: %w", err)
		}
		r.appender = &sheetsAppender{svc: svc}
	}

	return r, nil
}

// Record appends the flattened submission. Errors are returned for the call
// site to log; the recorder itself never touches the HTTP outcome.
func (r *SheetsRecorder) Record(ctx context.Context, rec models.SubmissionRecord, emailOutcome string) error {
	values := &sheets.ValueRange{
		Values: [][]any{rowFor(rec, emailOutcome, r.now())},
	}

	if err := r.appender.Append(ctx, r.spreadsheetID, r.appendRange, values); err != nil {
		return fmt.Errorf("sheets recorder: append: %w", err)
	}

	r.logger.Debug().
		Str("submission_id", rec.SubmissionID).
		Str("email_outcome", emailOutcome).
		Msg("submission mirrored to ledger")
	return nil
}

// rowFor flattens a submission into the ledger column order: timestamp,
// submission id, name, recipient, address, service, amount, attachment URL,
// email outcome.
func rowFor(rec models.SubmissionRecord, emailOutcome string, now time.Time) []any {
	return []any{
		now.UTC().Format(time.RFC3339),
		rec.SubmissionID,
		rec.Name,
		rec.RecipientEmail,
		rec.Address,
		rec.ServiceType,
		rec.Amount,
		rec.AttachmentURL,
		emailOutcome,
	}
}

type sheetsAppender struct {
	svc *sheets.Service
}

func (a *sheetsAppender) Append(ctx context.Context, spreadsheetID, appendRange string, values *sheets.ValueRange) error {
	_, err := a.svc.Spreadsheets.Values.
		Append(spreadsheetID, appendRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
