package source

import (
	"errors"
	"strings"
	"testing"

	"marquee/internal/media"
)

func TestExpand(t *testing.T) {
	vars := Vars{IMDbID: "tt123", TMDBID: "9", Type: media.TV, Season: 2, Episode: 5}

	got, err := Expand("https://x.com/{imdb_id}/{season}/{episode}", vars)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "https://x.com/tt123/2/5" {
		t.Errorf("Expand() = %q, want https://x.com/tt123/2/5", got)
	}
}

func TestExpandLeavesNoTokens(t *testing.T) {
	templates := []string{
		"https://x.com/{imdb_id}",
		"https://x.com/{tmdb_id}?s={season}&e={episode}",
		"https://x.com/{imdb_id}/{imdb_id}",
		"https://x.com/{tmdb_id}/{season}/{episode}/{imdb_id}",
		"https://x.com/plain",
		"https://x.com/{{imdb_id}}",
		"https://x.com/{x{imdb_id}}",
		"https://x.com/{x{tmdb_id}y}/{season}",
	}
	vars := Vars{IMDbID: "tt1", TMDBID: "2", Type: media.Movie, Season: 3, Episode: 4}

	for _, tmpl := range templates {
		got, err := Expand(tmpl, vars)
		if err != nil {
			t.Fatalf("Expand(%q) error: %v", tmpl, err)
		}
		for _, token := range []string{"{imdb_id}", "{tmdb_id}", "{season}", "{episode}"} {
			if strings.Contains(got, token) {
				t.Errorf("Expand(%q) = %q still contains %s", tmpl, got, token)
			}
		}
	}
}

func TestExpandDefaults(t *testing.T) {
	got, err := Expand("https://x.com/{season}/{episode}", Vars{TMDBID: "1"})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "https://x.com/1/1" {
		t.Errorf("season/episode should default to 1, got %q", got)
	}
}

func TestExpandMissingToken(t *testing.T) {
	_, err := Expand("https://x.com/{imdb_id}", Vars{TMDBID: "42"})
	var missing *MissingTokenError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTokenError, got %v", err)
	}
	if missing.Token != "{imdb_id}" {
		t.Errorf("missing token = %q, want {imdb_id}", missing.Token)
	}
}

func TestExpandUnrecognisedPlaceholder(t *testing.T) {
	got, err := Expand("https://x.com/{quality}/{tmdb_id}", Vars{TMDBID: "7"})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if got != "https://x.com/{quality}/7" {
		t.Errorf("unrecognised placeholders must pass through, got %q", got)
	}
}

func TestExpandTokenInsideOuterBraces(t *testing.T) {
	vars := Vars{IMDbID: "tt1", TMDBID: "2"}

	tests := []struct {
		template string
		want     string
	}{
		{"https://x.com/{{imdb_id}}", "https://x.com/{tt1}"},
		{"https://x.com/{x{imdb_id}}", "https://x.com/{xtt1}"},
		{"https://x.com/{x{tmdb_id}y}", "https://x.com/{x2y}"},
	}

	for _, tt := range tests {
		got, err := Expand(tt.template, vars)
		if err != nil {
			t.Fatalf("Expand(%q) error: %v", tt.template, err)
		}
		if got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		player  PlayerSource
		vars    Vars
		want    string
		wantErr bool
	}{
		{
			name:   "movie template",
			player: PlayerSource{Name: "A", MovieTemplate: "https://a.com/m/{tmdb_id}"},
			vars:   Vars{TMDBID: "603", Type: media.Movie},
			want:   "https://a.com/m/603",
		},
		{
			name:   "tv template",
			player: PlayerSource{Name: "A", TVTemplate: "https://a.com/tv/{tmdb_id}/{season}/{episode}"},
			vars:   Vars{TMDBID: "1396", Type: media.TV, Season: 5, Episode: 14},
			want:   "https://a.com/tv/1396/5/14",
		},
		{
			name:    "no template for media type",
			player:  PlayerSource{Name: "A", MovieTemplate: "https://a.com/m/{tmdb_id}"},
			vars:    Vars{TMDBID: "1396", Type: media.TV},
			wantErr: true,
		},
		{
			name:    "empty imdb id makes imdb template unavailable",
			player:  PlayerSource{Name: "A", MovieTemplate: "https://a.com/m/{imdb_id}"},
			vars:    Vars{TMDBID: "603", Type: media.Movie},
			wantErr: true,
		},
		{
			name:    "relative result rejected",
			player:  PlayerSource{Name: "A", MovieTemplate: "{tmdb_id}/player"},
			vars:    Vars{TMDBID: "603", Type: media.Movie},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.player.ResolveURL(tt.vars)
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("ResolveURL() error = %v, want ErrUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveURL() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuiltInsResolve(t *testing.T) {
	vars := Vars{IMDbID: "tt0133093", TMDBID: "603", Type: media.Movie}
	for _, p := range BuiltIns() {
		url, err := p.ResolveURL(vars)
		if err != nil {
			t.Errorf("%s: ResolveURL() error: %v", p.Name, err)
			continue
		}
		if !strings.HasPrefix(url, "https://") {
			t.Errorf("%s: resolved URL %q is not https", p.Name, url)
		}
	}
}
