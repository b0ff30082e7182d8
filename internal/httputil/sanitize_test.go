package httputil

import (
	"testing"
)

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://example.com/players.json", false},
		{"HTTP rejected", "http://example.com/players.json", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with port", "https://example.com:8080/players.json", false},
		{"valid with query", "https://example.com/players.json?v=2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeedURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFeedURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid builtin slug", "ezsource", false},
		{"valid uuid", "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0", false},
		{"valid imported prefix", "public-0f1e2d3c", false},
		{"empty", "", true},
		{"path traversal dots", "../../etc/passwd", true},
		{"shell injection semicolon", "123; rm -rf /", true},
		{"shell injection backtick", "123`whoami`", true},
		{"shell injection dollar", "$(cat /etc/passwd)", true},
		{"newline injection", "123\n456", true},
		{"pipe injection", "123|ls", true},
		{"slash rejected", "movie/abc", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
