package store

import (
	"encoding/json"

	"marquee/internal/log"
	"marquee/internal/source"
)

const importedKey = "imported_players.json"

// Imported source provenance, persisted per record.
const (
	SourceManual = "manual"
	SourcePublic = "public"
)

// ImportedRecord is the persisted form of an imported player. The generic
// feed-level "url" fallback is folded into MovieURL/TVURL before the record
// is written.
type ImportedRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MovieURL   string `json:"movieUrl,omitempty"`
	TVURL      string `json:"tvUrl,omitempty"`
	UseSandbox bool   `json:"useSandbox"`
	Source     string `json:"source"`
}

// ImportedStore manages players brought in via batch ingestion.
type ImportedStore struct {
	kv KV
}

// NewImportedStore returns a store backed by kv.
func NewImportedStore(kv KV) *ImportedStore {
	return &ImportedStore{kv: kv}
}

// Records loads the persisted set. Corruption degrades to empty, logged.
func (s *ImportedStore) Records() []ImportedRecord {
	data, err := s.kv.Get(importedKey)
	if err != nil || len(data) == 0 {
		if err != nil {
			l := log.With("store")
			l.Warn().Err(err).Msg("reading imported players, treating as empty")
		}
		return nil
	}

	var recs []ImportedRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		l := log.With("store")
		l.Warn().Err(err).Msg("imported players corrupt, treating as empty")
		return nil
	}
	return recs
}

// Replace persists the full record set in one write. Batch imports go
// through here so many items land as a single observable state change.
func (s *ImportedStore) Replace(recs []ImportedRecord) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return s.kv.Put(importedKey, data)
}

// Names returns the set of already-imported player names. Imported entries
// are identified by provider-assigned names, unlike custom sources which
// deduplicate by URL.
func (s *ImportedStore) Names() map[string]bool {
	names := make(map[string]bool)
	for _, r := range s.Records() {
		names[r.Name] = true
	}
	return names
}

// Delete removes an imported player by id. Absent ids are a no-op.
func (s *ImportedStore) Delete(id string) error {
	recs := s.Records()
	kept := recs[:0]
	for _, r := range recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}
	return s.Replace(kept)
}

// Clear removes every imported player.
func (s *ImportedStore) Clear() error {
	return s.kv.Delete(importedKey)
}

// List returns all imported players as player sources, in insertion order.
func (s *ImportedStore) List() []source.PlayerSource {
	recs := s.Records()
	out := make([]source.PlayerSource, 0, len(recs))
	for _, r := range recs {
		out = append(out, source.FromImported(r.ID, r.Name, r.MovieURL, r.TVURL, r.UseSandbox, r.Source == SourcePublic))
	}
	return out
}
