package ingest

import (
	"fmt"
	"net/http"

	"marquee/internal/httputil"
)

// FetchFeed downloads the public source feed and parses it into candidates.
// Failures here surface to the caller for a retry, but never touch the
// imported-player store: already-imported players keep resolving.
func FetchFeed(client *http.Client, feedURL string) ([]Candidate, error) {
	body, err := httputil.GetJSON(client, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching source feed: %w", err)
	}

	candidates, err := ParseBatch(body)
	if err != nil {
		return nil, fmt.Errorf("source feed: %w", err)
	}
	return candidates, nil
}
