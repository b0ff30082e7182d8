package playback

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"marquee/internal/source"
)

func TestIframeForSandboxed(t *testing.T) {
	sel := Selection{
		Player: source.PlayerSource{
			Name:               "S",
			Sandboxed:          true,
			SandboxPermissions: source.DefaultSandboxPermissions,
		},
		URL:       "https://s.example/embed/1",
		Available: true,
	}

	cfg, err := IframeFor(sel)
	if err != nil {
		t.Fatalf("IframeFor() error: %v", err)
	}
	if !cfg.HasSandbox {
		t.Fatal("sandboxed player must produce a sandbox attribute")
	}
	if cfg.Sandbox != source.DefaultSandboxPermissions {
		t.Errorf("sandbox = %q, want exactly the source's permission string", cfg.Sandbox)
	}
}

func TestIframeForUnsandboxed(t *testing.T) {
	sel := Selection{
		Player:    source.PlayerSource{Name: "U"},
		URL:       "https://u.example/embed/1",
		Available: true,
	}

	cfg, err := IframeFor(sel)
	if err != nil {
		t.Fatalf("IframeFor() error: %v", err)
	}
	if cfg.HasSandbox || cfg.Sandbox != "" {
		t.Errorf("unsandboxed player must have no sandbox attribute at all, got %+v", cfg)
	}
}

func TestIframeForStripsForbiddenPermissions(t *testing.T) {
	sel := Selection{
		Player: source.PlayerSource{
			Name:               "Evil",
			Sandboxed:          true,
			SandboxPermissions: "allow-scripts allow-top-navigation allow-popups allow-same-origin",
		},
		URL:       "https://evil.example/embed",
		Available: true,
	}

	cfg, err := IframeFor(sel)
	if err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"allow-top-navigation", "allow-popups"} {
		if strings.Contains(cfg.Sandbox, bad) {
			t.Errorf("sandbox %q still grants %s", cfg.Sandbox, bad)
		}
	}
	if !strings.Contains(cfg.Sandbox, "allow-scripts") {
		t.Errorf("legitimate grants were dropped: %q", cfg.Sandbox)
	}
}

func TestIframeForUnavailable(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
	}{
		{"unavailable flag", Selection{URL: "https://x.example", Available: false}},
		{"empty url", Selection{Available: true}},
		{"relative url", Selection{URL: "/embed/1", Available: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := IframeFor(tt.sel); !errors.Is(err, source.ErrUnavailable) {
				t.Errorf("IframeFor() = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestWritePage(t *testing.T) {
	sel := Selection{
		Player: source.PlayerSource{
			Name:               "S",
			Sandboxed:          true,
			SandboxPermissions: source.DefaultSandboxPermissions,
		},
		URL:       "https://s.example/embed/1?a=b",
		Available: true,
	}

	var buf bytes.Buffer
	if err := WritePage(&buf, "The Matrix", sel); err != nil {
		t.Fatalf("WritePage() error: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, `sandbox="allow-scripts allow-same-origin allow-presentation"`) {
		t.Errorf("page missing sandbox attribute:\n%s", html)
	}
	if !strings.Contains(html, "https://s.example/embed/1?a=b") {
		t.Errorf("page missing iframe src:\n%s", html)
	}
	if !strings.Contains(html, "<title>The Matrix</title>") {
		t.Errorf("page missing title:\n%s", html)
	}
}

func TestWritePageUnsandboxedOmitsAttribute(t *testing.T) {
	sel := Selection{
		Player:    source.PlayerSource{Name: "U"},
		URL:       "https://u.example/embed/1",
		Available: true,
	}

	var buf bytes.Buffer
	if err := WritePage(&buf, "x", sel); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "sandbox") {
		t.Errorf("unsandboxed page must not mention sandbox:\n%s", buf.String())
	}
}

func TestWritePageRefusesUnavailable(t *testing.T) {
	var buf bytes.Buffer
	err := WritePage(&buf, "x", Selection{URL: "", Available: false})
	if !errors.Is(err, source.ErrUnavailable) {
		t.Fatalf("WritePage() = %v, want ErrUnavailable", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing may be written for an unavailable selection")
	}
}
