package mailer

import (
	"context"
	"errors"

	"github.com/fieldops/survey-notifier/internal/models"
)

// Sentinel errors distinguishing the two send failure kinds. Authentication
// failures point at broken credentials and should alarm loudly; transport
// failures are transient and safe for the webhook submitter to retry.
var (
	ErrAuthentication = errors.New("mail authentication failed")
	ErrTransport      = errors.New("mail transport failure")
)

// Sender delivers a composed confirmation to a single recipient.
type Sender interface {
	Send(ctx context.Context, msg *models.ComposedMessage, recipient string) error
}
