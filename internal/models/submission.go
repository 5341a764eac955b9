package models

// Default values applied while normalizing sparse submissions.
const (
	DefaultName       = "Valued Customer"
	DefaultFieldValue = "N/A"
)

// SubmissionRecord is the normalized, fully defaulted representation of one
// survey submission. It is constructed once per request by the normalizer and
// never mutated afterwards.
type SubmissionRecord struct {
	SubmissionID   string `json:"submission_id"`
	Name           string `json:"name"`
	RecipientEmail string `json:"recipient_email"`
	Address        string `json:"address"`
	ServiceType    string `json:"service_type"`
	Amount         string `json:"amount"`
	AttachmentURL  string `json:"attachment_url,omitempty"`

	// UsedFallbackRecipient records that the submitter supplied an address
	// that failed the plausibility check and the configured sending address
	// was substituted.
	UsedFallbackRecipient bool `json:"used_fallback_recipient,omitempty"`

	// Urgent is set when the submission carries an urgent status marker.
	Urgent bool `json:"urgent,omitempty"`
}

// Attachment is a fetched binary part ready to be included in a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// ComposedMessage is the ephemeral outbound confirmation built for one
// submission. Subject and body are fully rendered; Attachment is nil when the
// submission carried no usable signature image.
type ComposedMessage struct {
	Subject    string
	Body       string
	Attachment *Attachment
}
