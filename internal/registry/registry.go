// Package registry aggregates every available player source: built-ins,
// custom sources and imported players, deduplicated into one ordered list.
package registry

import (
	"marquee/internal/source"
	"marquee/internal/store"
)

// Registry recomputes the aggregate player list from its stores on every
// call; it holds no authoritative state of its own.
type Registry struct {
	custom   *store.CustomStore
	imported *store.ImportedStore
}

// New returns a registry reading from the given stores.
func New(custom *store.CustomStore, imported *store.ImportedStore) *Registry {
	return &Registry{custom: custom, imported: imported}
}

// All returns the deduplicated player list. Candidates are visited in fixed
// precedence order (built-ins, then custom, then imported) keyed by
// (name, id); the first occurrence wins, so built-ins can never be shadowed
// and a re-imported entry never shows up twice. Storage failures inside the
// stores degrade to empty tiers and cannot hide the others.
func (r *Registry) All() []source.PlayerSource {
	var candidates []source.PlayerSource
	candidates = append(candidates, source.BuiltIns()...)
	candidates = append(candidates, r.custom.List()...)
	candidates = append(candidates, r.imported.List()...)

	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, p := range candidates {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Find returns the source with the given id from the current snapshot.
func (r *Registry) Find(id string) (source.PlayerSource, bool) {
	for _, p := range r.All() {
		if p.ID == id {
			return p, true
		}
	}
	return source.PlayerSource{}, false
}

// Delete removes a deletable source from whichever store holds it. Built-in
// ids are rejected; unknown ids are a no-op.
func (r *Registry) Delete(id string) error {
	for _, b := range source.BuiltIns() {
		if b.ID == id {
			return ErrBuiltIn
		}
	}
	if err := r.custom.Delete(id); err != nil {
		return err
	}
	return r.imported.Delete(id)
}
