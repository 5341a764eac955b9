package ledger

import (
	"context"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/fieldops/survey-notifier/internal/models"
)

// Email outcome values mirrored into the ledger row.
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// Recorder appends one flattened submission row to the ledger store. Callers
// treat failures as best-effort: log and discard, never propagate into the
// HTTP response.
type Recorder interface {
	Record(ctx context.Context, rec models.SubmissionRecord, emailOutcome string) error
}

// Noop is the Recorder used when no ledger credentials are configured.
type Noop struct {
	logger zerolog.Logger
}

// NewNoop constructs a Recorder that drops every row.
func NewNoop(logger zerolog.Logger) *Noop {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &Noop{logger: logger}
}

// Record logs the skipped row and succeeds.
func (n *Noop) Record(_ context.Context, rec models.SubmissionRecord, emailOutcome string) error {
	n.logger.Debug().
		Str("submission_id", rec.SubmissionID).
		Str("email_outcome", emailOutcome).
		Msg("ledger disabled; row dropped")
	return nil
}
