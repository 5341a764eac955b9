package mailer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fieldops/survey-notifier/internal/mailer"
	"github.com/fieldops/survey-notifier/internal/models"
)

func sampleRecord() models.SubmissionRecord {
	return models.SubmissionRecord{
		SubmissionID:   "sub-1",
		Name:           "J. Doe",
		RecipientEmail: "j@x.com",
		Address:        "12 Elm Street",
		ServiceType:    "Termite Treatment",
		Amount:         "150",
	}
}

func TestComposeContent(t *testing.T) {
	msg := mailer.Compose(sampleRecord(), nil)

	if msg.Subject != "Thank You – Termite Treatment Completed" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{"J. Doe", "Termite Treatment", "12 Elm Street", "150"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("expected body to contain %q, got %q", want, msg.Body)
		}
	}
	if msg.Attachment != nil {
		t.Fatalf("expected no attachment for nil bytes")
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	att := []byte{0x01, 0x02, 0x03}

	first := mailer.Compose(sampleRecord(), att)
	second := mailer.Compose(sampleRecord(), att)

	if first.Subject != second.Subject {
		t.Fatalf("subjects differ: %q vs %q", first.Subject, second.Subject)
	}
	if first.Body != second.Body {
		t.Fatalf("bodies differ: %q vs %q", first.Body, second.Body)
	}
	if !bytes.Equal(first.Attachment.Content, second.Attachment.Content) {
		t.Fatalf("attachment bytes differ")
	}
	if first.Attachment.Filename != second.Attachment.Filename {
		t.Fatalf("attachment filenames differ")
	}
}

func TestComposeAttachment(t *testing.T) {
	att := []byte{0xFF, 0xD8}
	msg := mailer.Compose(sampleRecord(), att)

	if msg.Attachment == nil {
		t.Fatalf("expected attachment part")
	}
	if msg.Attachment.Filename != mailer.SignatureFilename {
		t.Fatalf("unexpected filename: %q", msg.Attachment.Filename)
	}
	if !bytes.Equal(msg.Attachment.Content, att) {
		t.Fatalf("attachment bytes were not passed through")
	}

	if empty := mailer.Compose(sampleRecord(), []byte{}); empty.Attachment != nil {
		t.Fatalf("expected no attachment for empty bytes")
	}
}

func TestComposeDefaultedRecord(t *testing.T) {
	rec := models.SubmissionRecord{
		Name:           models.DefaultName,
		RecipientEmail: "notifier@example.com",
		Address:        models.DefaultFieldValue,
		ServiceType:    models.DefaultFieldValue,
		Amount:         models.DefaultFieldValue,
	}

	msg := mailer.Compose(rec, nil)
	if !strings.Contains(msg.Body, models.DefaultName) {
		t.Fatalf("expected default name in body, got %q", msg.Body)
	}
	if !strings.Contains(msg.Subject, models.DefaultFieldValue) {
		t.Fatalf("expected default service type in subject, got %q", msg.Subject)
	}
}
