package webhook

import (
	"context"
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldops/survey-notifier/internal/ledger"
	"github.com/fieldops/survey-notifier/internal/mailer"
)

// Fetcher resolves an attachment reference to raw bytes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Dependencies wires the collaborators the handler orchestrates per request.
type Dependencies struct {
	Logger   zerolog.Logger
	Fetcher  Fetcher
	Sender   mailer.Sender
	Recorder ledger.Recorder

	// FallbackRecipient receives the confirmation when the submitter's
	// address fails the plausibility check. In practice this is the
	// service's own sending address.
	FallbackRecipient string
}

// Handler processes inbound survey webhooks. It holds no per-request state;
// each request builds its own SubmissionRecord and ComposedMessage.
type Handler struct {
	logger   zerolog.Logger
	fetcher  Fetcher
	sender   mailer.Sender
	recorder ledger.Recorder
	fallback string
}

// NewHandler validates the dependency set and returns a Handler.
func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Fetcher == nil {
		return nil, errors.New("webhook handler: fetcher dependency is required")
	}
	if deps.Sender == nil {
		return nil, errors.New("webhook handler: sender dependency is required")
	}
	if deps.Recorder == nil {
		return nil, errors.New("webhook handler: recorder dependency is required")
	}
	if deps.FallbackRecipient == "" {
		return nil, errors.New("webhook handler: fallback recipient is required")
	}

	logger := deps.Logger
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	return &Handler{
		logger:   logger,
		fetcher:  deps.Fetcher,
		sender:   deps.Sender,
		recorder: deps.Recorder,
		fallback: deps.FallbackRecipient,
	}, nil
}

// HandleSubmission runs the pipeline for one inbound webhook: decode,
// normalize, fetch attachment (best-effort), compose, send, record
// (best-effort), respond. Only a missing or unparseable body short-circuits
// before side effects.
func (h *Handler) HandleSubmission(c *gin.Context) {
	var doc any
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.logger.Warn().Err(err).Msg("rejected webhook with unparseable body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be valid JSON"})
		return
	}

	ctx := c.Request.Context()
	rec := Normalize(doc, h.fallback)
	rec.SubmissionID = uuid.NewString()

	log := h.logger.With().Str("submission_id", rec.SubmissionID).Logger()
	log.Info().
		Str("recipient", rec.RecipientEmail).
		Bool("fallback_recipient", rec.UsedFallbackRecipient).
		Str("service_type", rec.ServiceType).
		Msg("webhook payload received")

	if rec.Urgent {
		log.Warn().Msg("urgent submission flagged")
	}

	var attachmentBytes []byte
	if rec.AttachmentURL != "" {
		data, err := h.fetcher.Fetch(ctx, rec.AttachmentURL)
		if err != nil {
			log.Warn().Err(err).Str("url", rec.AttachmentURL).Msg("signature fetch failed; sending without attachment")
		} else {
			attachmentBytes = data
		}
	}

	msg := mailer.Compose(rec, attachmentBytes)

	outcome := ledger.OutcomeSent
	sendErr := h.sender.Send(ctx, msg, rec.RecipientEmail)
	if sendErr != nil {
		outcome = ledger.OutcomeFailed
		if errors.Is(sendErr, mailer.ErrAuthentication) {
			log.Error().Err(sendErr).Str("failure", "authentication").Msg("mail credentials rejected; check configuration")
		} else {
			log.Error().Err(sendErr).Str("failure", "transport").Msg("confirmation email send failed")
		}
	} else {
		log.Info().Str("recipient", rec.RecipientEmail).Bool("attachment", msg.Attachment != nil).Msg("confirmation email sent")
	}

	if err := h.recorder.Record(ctx, rec, outcome); err != nil {
		log.Error().Err(err).Msg("ledger write failed")
	}

	if sendErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send confirmation email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email processed"})
}
