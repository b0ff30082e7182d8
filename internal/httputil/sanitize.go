package httputil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// validIDPattern matches player source ids: uuid-shaped, built-in slugs and
// prefixed imported ids.
var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateFeedURL checks that a feed URL is well-formed and uses HTTPS.
// Unlike player templates, the feed is fetched by us, so plain http is not
// accepted here.
func ValidateFeedURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidateID checks that a player source id contains only safe characters.
// IDs end up in storage keys and log lines, never in shell commands, but
// rejecting control characters early keeps every downstream simple.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if len(id) > 128 {
		return fmt.Errorf("ID too long: %d characters", len(id))
	}
	if !validIDPattern.MatchString(id) {
		return fmt.Errorf("ID contains invalid characters: %q", id)
	}
	if strings.Contains(id, "..") {
		return fmt.Errorf("ID contains path traversal: %q", id)
	}
	return nil
}
