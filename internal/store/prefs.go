package store

import "strings"

const defaultPlayerKey = "default_player"

// Prefs holds sticky user preferences, currently just the default player id.
type Prefs struct {
	kv KV
}

// NewPrefs returns a preference store backed by kv.
func NewPrefs(kv KV) *Prefs {
	return &Prefs{kv: kv}
}

// DefaultPlayerID returns the stored default player id, or "" when unset.
func (p *Prefs) DefaultPlayerID() string {
	data, err := p.kv.Get(defaultPlayerKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetDefaultPlayerID persists the default player id.
func (p *Prefs) SetDefaultPlayerID(id string) error {
	return p.kv.Put(defaultPlayerKey, []byte(id))
}

// ClearDefaultPlayer removes the preference.
func (p *Prefs) ClearDefaultPlayer() error {
	return p.kv.Delete(defaultPlayerKey)
}
