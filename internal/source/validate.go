package source

import (
	"errors"
	"net/url"
	"strings"
)

// Creation-time validation errors. All are user-correctable and block
// persistence of the candidate source.
var (
	ErrEmptyName  = errors.New("source name cannot be empty")
	ErrEmptyURL   = errors.New("source URL cannot be empty")
	ErrInvalidURL = errors.New("URL must start with http:// or https:// and include a domain")
)

// ValidateBaseURL checks that a candidate template is an absolute http(s)
// URL with a real domain. Placeholder tokens are allowed anywhere after the
// scheme; only the base shape is validated here. A candidate failing this
// check must never be persisted or displayed.
func ValidateBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	// Require a dotted host so bare words like "http://x" are rejected.
	if u.Host == "" || !strings.Contains(u.Host, ".") {
		return ErrInvalidURL
	}
	return nil
}
