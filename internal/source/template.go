package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"marquee/internal/media"
)

// Vars holds the substitution values for a URL template. Season and Episode
// default to 1 when unset, matching how embed providers number content.
type Vars struct {
	IMDbID  string
	TMDBID  string
	Type    media.MediaType
	Season  int
	Episode int
}

// VarsFor builds substitution variables from an item's identifiers.
func VarsFor(item media.Item) Vars {
	return Vars{
		IMDbID:  item.IMDbID,
		TMDBID:  item.TMDBID,
		Type:    item.Type,
		Season:  item.Season,
		Episode: item.Episode,
	}
}

// ErrUnavailable means a source produced no usable URL for the requested
// item: no template for the media type, a required identifier was missing,
// or the result was not an absolute http(s) URL. Callers must render an
// "unavailable" state instead of an iframe.
var ErrUnavailable = errors.New("player unavailable")

// MissingTokenError reports a template placeholder whose value is empty.
type MissingTokenError struct {
	Token string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("template requires %s but no value is set", e.Token)
}

// The recognised placeholder tokens. Templates are end-user-authored free
// text; anything outside this set is passed through untouched.
const (
	tokenIMDb    = "{imdb_id}"
	tokenTMDB    = "{tmdb_id}"
	tokenSeason  = "{season}"
	tokenEpisode = "{episode}"
)

// Expand substitutes every occurrence of the recognised tokens in a single
// pass. It guarantees that no recognised token survives in the output: a
// token whose value is empty fails with MissingTokenError rather than
// leaking literal braces into the URL.
func Expand(template string, vars Vars) (string, error) {
	season := vars.Season
	if season < 1 {
		season = 1
	}
	episode := vars.Episode
	if episode < 1 {
		episode = 1
	}

	values := map[string]string{
		tokenIMDb:    vars.IMDbID,
		tokenTMDB:    vars.TMDBID,
		tokenSeason:  strconv.Itoa(season),
		tokenEpisode: strconv.Itoa(episode),
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		b.WriteString(template[i:open])

		// Match the known tokens by prefix rather than scanning to the
		// next closing brace, so a token nested inside outer braces
		// ({x{imdb_id}}) is still substituted instead of leaking through.
		token := matchToken(template[open:])
		if token == "" {
			// Unrecognised brace, pass through verbatim.
			b.WriteByte('{')
			i = open + 1
			continue
		}

		value := values[token]
		if value == "" {
			return "", &MissingTokenError{Token: token}
		}
		b.WriteString(value)
		i = open + len(token)
	}

	return b.String(), nil
}

// matchToken returns the recognised token s starts with, or "".
func matchToken(s string) string {
	for _, token := range []string{tokenIMDb, tokenTMDB, tokenSeason, tokenEpisode} {
		if strings.HasPrefix(s, token) {
			return token
		}
	}
	return ""
}

// templateFor selects the template matching the media type, or "" when the
// source does not support it.
func (p PlayerSource) templateFor(t media.MediaType) string {
	if t == media.TV {
		return p.TVTemplate
	}
	return p.MovieTemplate
}

// ResolveURL produces the concrete embed URL for this source. The result is
// guaranteed to be an absolute http(s) URL with every recognised placeholder
// substituted; any other outcome is ErrUnavailable.
func (p PlayerSource) ResolveURL(vars Vars) (string, error) {
	template := p.templateFor(vars.Type)
	if template == "" {
		return "", fmt.Errorf("%w: %s has no %s template", ErrUnavailable, p.Name, vars.Type)
	}

	url, err := Expand(template, vars)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !strings.HasPrefix(url, "http") {
		return "", fmt.Errorf("%w: resolved URL is not absolute", ErrUnavailable)
	}
	return url, nil
}
