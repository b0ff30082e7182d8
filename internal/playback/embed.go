package playback

import (
	"strings"

	"marquee/internal/source"
)

// forbidden sandbox grants. Even if a stored permission string somehow
// carries one of these, it is stripped before the iframe is configured.
var forbiddenPermissions = map[string]bool{
	"allow-top-navigation":                     true,
	"allow-top-navigation-by-user-activation":  true,
	"allow-top-navigation-to-custom-protocols": true,
	"allow-popups":                             true,
	"allow-popups-to-escape-sandbox":           true,
}

// IframeConfig is the complete, explicit iframe configuration for a
// selection. Every attribute is stated on every render; nothing is patched
// incrementally. When HasSandbox is false the sandbox attribute must be
// absent from the element entirely, not left over from a previous player.
type IframeConfig struct {
	Src             string
	HasSandbox      bool
	Sandbox         string
	AllowFullscreen bool
	ReferrerPolicy  string
}

// IframeFor derives the iframe configuration from a selection. An
// unavailable selection or a non-http src yields ErrUnavailable: the caller
// must render a fallback instead of an iframe.
func IframeFor(sel Selection) (IframeConfig, error) {
	if !sel.Available || sel.URL == "" || !strings.HasPrefix(sel.URL, "http") {
		return IframeConfig{}, source.ErrUnavailable
	}

	cfg := IframeConfig{
		Src:             sel.URL,
		AllowFullscreen: true,
		ReferrerPolicy:  "no-referrer",
	}
	if sel.Player.Sandboxed {
		cfg.HasSandbox = true
		cfg.Sandbox = filterPermissions(sel.Player.SandboxPermissions)
	}
	return cfg, nil
}

// filterPermissions keeps only the grants from the source's fixed permission
// string, minus anything that would allow navigation or popups.
func filterPermissions(perms string) string {
	var kept []string
	for _, p := range strings.Fields(perms) {
		if !forbiddenPermissions[p] {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
