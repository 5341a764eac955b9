package mailer

import (
	"fmt"

	"github.com/fieldops/survey-notifier/internal/models"
)

// SignatureFilename is the fixed name given to the attached signature image.
const SignatureFilename = "signature.jpg"

const bodyTemplate = `Dear %s,

Thank you for requesting our service.
The '%s' has been completed at %s.
Amount due: %s.

Regards,
EoA Team
`

// Compose builds the confirmation message for one submission. It performs no
// I/O and no clock reads, so identical inputs always produce identical
// output.
func Compose(rec models.SubmissionRecord, attachment []byte) *models.ComposedMessage {
	msg := &models.ComposedMessage{
		Subject: fmt.Sprintf("Thank You – %s Completed", rec.ServiceType),
		Body:    fmt.Sprintf(bodyTemplate, rec.Name, rec.ServiceType, rec.Address, rec.Amount),
	}

	if len(attachment) > 0 {
		msg.Attachment = &models.Attachment{
			Filename: SignatureFilename,
			Content:  attachment,
		}
	}

	return msg
}
