package util

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL indicates that a URL failed validation.
var ErrInvalidURL = errors.New("invalid url")

// PlausibleEmail reports whether a value looks like a deliverable address:
// it contains an "@" and the segment after the "@" contains a ".". This is
// intentionally looser than full RFC 5322 parsing; the upstream form builder
// performs no validation of its own and overly strict checks would reject
// addresses the submitter can actually receive mail at.
func PlausibleEmail(value string) bool {
	trimmed := strings.TrimSpace(value)
	at := strings.Index(trimmed, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(trimmed[at+1:], ".")
}

// ValidateHTTPURL ensures the provided string is a valid HTTP or HTTPS URL.
func ValidateHTTPURL(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: value is empty", ErrInvalidURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: host is required", ErrInvalidURL)
	}

	return trimmed, nil
}
