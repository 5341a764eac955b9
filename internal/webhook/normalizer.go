package webhook

import (
	"sort"
	"strings"

	"github.com/fieldops/survey-notifier/internal/models"
	"github.com/fieldops/survey-notifier/internal/util"
)

// Payload field names agreed with the upstream survey producer. Lookups are
// case-sensitive; unknown keys are ignored.
const (
	keyFeature     = "feature"
	keyAttributes  = "attributes"
	keyAttachments = "attachments"
	keyName        = "name"
	keyEmail       = "e_mail"
	keyAddress     = "client_address"
	keyServiceType = "service_type"
	keyAmount      = "amount"
	keyStatus      = "status"
	keyURL         = "url"
)

// attachmentShape classifies the polymorphic attachments container so the
// extraction below stays exhaustive instead of cascading shape probes.
type attachmentShape int

const (
	shapeAbsent attachmentShape = iota
	shapeSequence
	shapeFlatObject
	shapeNestedObject
)

// Normalize extracts a fully populated SubmissionRecord from an arbitrarily
// shaped decoded JSON document. It never fails: structural anomalies degrade
// to the documented defaults, and an implausible recipient address is replaced
// by fallbackRecipient (the service's own sending address). The returned
// record always carries a non-empty, plausible recipient.
func Normalize(doc any, fallbackRecipient string) models.SubmissionRecord {
	rec := models.SubmissionRecord{
		Name:        models.DefaultName,
		Address:     models.DefaultFieldValue,
		ServiceType: models.DefaultFieldValue,
		Amount:      models.DefaultFieldValue,
	}

	root, _ := doc.(map[string]any)
	feature, _ := root[keyFeature].(map[string]any)
	attrs, _ := feature[keyAttributes].(map[string]any)

	rec.Name = stringField(attrs, keyName, models.DefaultName)
	rec.Address = stringField(attrs, keyAddress, models.DefaultFieldValue)
	rec.ServiceType = stringField(attrs, keyServiceType, models.DefaultFieldValue)
	rec.Amount = stringField(attrs, keyAmount, models.DefaultFieldValue)
	rec.Urgent = strings.EqualFold(stringField(attrs, keyStatus, ""), "urgent")

	email := stringField(attrs, keyEmail, "")
	if util.PlausibleEmail(email) {
		rec.RecipientEmail = strings.TrimSpace(email)
	} else {
		rec.RecipientEmail = fallbackRecipient
		rec.UsedFallbackRecipient = true
	}

	if ref := resolveAttachmentRef(feature[keyAttachments]); ref != "" {
		if validated, err := util.ValidateHTTPURL(ref); err == nil {
			rec.AttachmentURL = validated
		}
	}

	return rec
}

// resolveAttachmentRef applies the attachment resolution rule: first element
// of a sequence, direct url of a flat object, or url of the first nested
// object (keys sorted, since decoded JSON objects carry no order). Any
// malformed shape yields the empty string.
func resolveAttachmentRef(container any) string {
	switch classifyAttachments(container) {
	case shapeSequence:
		seq := container.([]any)
		first, _ := seq[0].(map[string]any)
		return stringField(first, keyURL, "")
	case shapeFlatObject:
		obj := container.(map[string]any)
		return stringField(obj, keyURL, "")
	case shapeNestedObject:
		obj := container.(map[string]any)
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if nested, ok := obj[k].(map[string]any); ok {
				if url := stringField(nested, keyURL, ""); url != "" {
					return url
				}
			}
		}
		return ""
	default:
		return ""
	}
}

func classifyAttachments(container any) attachmentShape {
	switch v := container.(type) {
	case []any:
		if len(v) == 0 {
			return shapeAbsent
		}
		if _, ok := v[0].(map[string]any); !ok {
			return shapeAbsent
		}
		return shapeSequence
	case map[string]any:
		if _, ok := v[keyURL].(string); ok {
			return shapeFlatObject
		}
		for _, nested := range v {
			if _, ok := nested.(map[string]any); ok {
				return shapeNestedObject
			}
		}
		return shapeAbsent
	default:
		return shapeAbsent
	}
}

func stringField(obj map[string]any, key, def string) string {
	val, ok := obj[key].(string)
	if !ok {
		return def
	}
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return def
	}
	return trimmed
}
