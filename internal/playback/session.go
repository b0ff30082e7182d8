// Package playback tracks the selected player for a watch session and
// derives the iframe configuration the embedding view renders.
package playback

import (
	"marquee/internal/media"
	"marquee/internal/registry"
	"marquee/internal/source"
	"marquee/internal/store"
)

// Selection is the session's current state as seen by the embedding view.
// When Available is false the view must show a "player unavailable" state
// and render no iframe.
type Selection struct {
	Player    source.PlayerSource
	URL       string
	Available bool
}

// Notifier receives selection changes. The initial mount notifies exactly
// once; registry refreshes that change nothing stay silent.
type Notifier func(Selection)

// Session is the per-watch selection state machine.
type Session struct {
	registry *registry.Registry
	prefs    *store.Prefs
	notify   Notifier

	item    media.Item
	current Selection
	mounted bool
}

// NewSession returns an unmounted session. notify may be nil.
func NewSession(reg *registry.Registry, prefs *store.Prefs, notify Notifier) *Session {
	if notify == nil {
		notify = func(Selection) {}
	}
	return &Session{registry: reg, prefs: prefs, notify: notify}
}

// Mount initialises the session for an item: the stored default player if it
// still exists in the current registry snapshot, else the first built-in.
// The notifier fires exactly once here regardless of later refreshes.
func (s *Session) Mount(item media.Item) Selection {
	s.item = item

	player := source.FirstBuiltIn()
	if id := s.prefs.DefaultPlayerID(); id != "" {
		if p, ok := s.registry.Find(id); ok {
			player = p
		}
	}

	s.setPlayer(player)
	s.mounted = true
	return s.current
}

// Select switches to an explicit user choice and recomputes the URL.
func (s *Session) Select(id string) (Selection, error) {
	p, ok := s.registry.Find(id)
	if !ok {
		return s.current, source.ErrUnavailable
	}
	s.setPlayer(p)
	return s.current, nil
}

// SetEpisode changes season/episode, keeping the selected player identity
// and recomputing the URL.
func (s *Session) SetEpisode(season, episode int) Selection {
	s.item.Season = season
	s.item.Episode = episode
	s.setPlayer(s.current.Player)
	return s.current
}

// SetItem switches the session to a different item, keeping the player.
func (s *Session) SetItem(item media.Item) Selection {
	s.item = item
	s.setPlayer(s.current.Player)
	return s.current
}

// Refresh re-reads the registry, e.g. when the selector opens. If the
// selected player was deleted (possibly by another window), it degrades to
// the first built-in instead of crashing the view.
func (s *Session) Refresh() Selection {
	if _, ok := s.registry.Find(s.current.Player.ID); !ok {
		s.setPlayer(source.FirstBuiltIn())
	}
	return s.current
}

// Players returns the current registry snapshot for a selector view.
func (s *Session) Players() []source.PlayerSource {
	return s.registry.All()
}

// Current returns the selection without recomputing anything.
func (s *Session) Current() Selection {
	return s.current
}

// setPlayer recomputes the resolved URL and notifies the view. A resolution
// failure is not an error at this level: the selection simply becomes
// unavailable.
func (s *Session) setPlayer(p source.PlayerSource) {
	sel := Selection{Player: p}
	if url, err := p.ResolveURL(source.VarsFor(s.item)); err == nil {
		sel.URL = url
		sel.Available = true
	}

	changed := sel != s.current
	s.current = sel
	if !s.mounted || changed {
		s.notify(sel)
	}
}
