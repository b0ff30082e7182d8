// Package media defines shared types for the marquee application.
package media

// MediaType represents whether content is a movie or TV show.
type MediaType int

const (
	Movie MediaType = iota
	TV
)

func (m MediaType) String() string {
	switch m {
	case Movie:
		return "movie"
	case TV:
		return "tv"
	default:
		return "unknown"
	}
}

// ParseMediaType converts a string to a MediaType. Anything that is not
// recognisably TV is treated as a movie.
func ParseMediaType(s string) MediaType {
	switch s {
	case "tv", "show", "shows", "series":
		return TV
	default:
		return Movie
	}
}

// Item carries the identifiers needed to resolve a player URL for a piece of
// content. IMDbID may be empty: some catalog entries lack one, in which case
// templates that require it are unavailable.
type Item struct {
	IMDbID  string    // External catalog ID, e.g. "tt0133093" (may be empty)
	TMDBID  string    // Internal catalog ID, e.g. "603"
	Title   string    // Display title
	Type    MediaType // Movie or TV
	Season  int       // Season number (TV only)
	Episode int       // Episode number (TV only)
}

// WatchEntry represents a single entry in the continue-watching log.
type WatchEntry struct {
	TMDBID    string    // Internal catalog ID
	IMDbID    string    // External catalog ID (may be empty)
	Title     string    // Display title
	Type      MediaType // Movie or TV
	Season    int       // Season number (TV only, 0 for movies)
	Episode   int       // Episode number (TV only, 0 for movies)
	PlayerID  string    // Player source used for the last watch
	WatchedAt int64     // Unix timestamp of the last watch
}
