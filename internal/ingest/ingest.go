// Package ingest parses externally supplied player definitions and imports
// them into the imported-player store. Payloads are untrusted free-form
// JSON; everything is validated at this boundary before any state changes.
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"marquee/internal/source"
	"marquee/internal/store"
)

// Candidate is one externally supplied player definition. The generic URL is
// a fallback for both media types when the specific one is absent.
type Candidate struct {
	Name       string `json:"name"`
	MovieURL   string `json:"movieUrl,omitempty"`
	TVURL      string `json:"tvUrl,omitempty"`
	URL        string `json:"url,omitempty"`
	UseSandbox bool   `json:"useSandbox"`
}

// movieTemplate and tvTemplate apply the generic-URL fallback.
func (c Candidate) movieTemplate() string {
	if c.MovieURL != "" {
		return c.MovieURL
	}
	return c.URL
}

func (c Candidate) tvTemplate() string {
	if c.TVURL != "" {
		return c.TVURL
	}
	return c.URL
}

// validate rejects candidates whose shape cannot become a player source.
// Every template present must pass absolute-URL validation before anything
// is persisted or displayed.
func (c Candidate) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return source.ErrEmptyName
	}
	if c.movieTemplate() == "" && c.tvTemplate() == "" {
		return source.ErrEmptyURL
	}
	for _, t := range []string{c.MovieURL, c.TVURL, c.URL} {
		if t == "" {
			continue
		}
		if err := source.ValidateBaseURL(t); err != nil {
			return err
		}
	}
	return nil
}

// ParseBatch decodes a payload holding either a single JSON object or an
// array, normalised to a slice. Malformed JSON fails with the parser's
// message and must not cause any state change in the caller.
func ParseBatch(raw []byte) ([]Candidate, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("parsing players: empty input")
	}

	if strings.HasPrefix(trimmed, "[") {
		var batch []Candidate
		if err := json.Unmarshal([]byte(trimmed), &batch); err != nil {
			return nil, fmt.Errorf("parsing players: %w", err)
		}
		return batch, nil
	}

	var single Candidate
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return nil, fmt.Errorf("parsing players: %w", err)
	}
	return []Candidate{single}, nil
}

// DuplicateError reports a candidate whose name is already imported.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q is already imported", e.Name)
}

// Result summarises a batch import.
type Result struct {
	Imported []source.PlayerSource
	Skipped  []Candidate
}

// Importer writes accepted candidates into the imported-player store.
type Importer struct {
	store  *store.ImportedStore
	origin string // store.SourceManual or store.SourcePublic
}

// NewImporter returns an importer tagging new records with origin.
func NewImporter(s *store.ImportedStore, origin string) *Importer {
	return &Importer{store: s, origin: origin}
}

func (im *Importer) record(c Candidate) store.ImportedRecord {
	return store.ImportedRecord{
		ID:         im.origin + "-" + uuid.NewString(),
		Name:       c.Name,
		MovieURL:   c.movieTemplate(),
		TVURL:      c.tvTemplate(),
		UseSandbox: c.UseSandbox,
		Source:     im.origin,
	}
}

// ImportOne imports a single candidate. Duplicate detection is by exact
// name against the already-imported set.
func (im *Importer) ImportOne(c Candidate) (source.PlayerSource, error) {
	if err := c.validate(); err != nil {
		return source.PlayerSource{}, err
	}
	if im.store.Names()[c.Name] {
		return source.PlayerSource{}, &DuplicateError{Name: c.Name}
	}

	rec := im.record(c)
	if err := im.store.Replace(append(im.store.Records(), rec)); err != nil {
		return source.PlayerSource{}, err
	}
	return recordToSource(rec), nil
}

// ImportAll imports a batch atomically: the full next state is computed
// first and persisted in one write, so a tight loop of imports cannot lose
// updates. Duplicates and invalid candidates are skipped, never fatal.
func (im *Importer) ImportAll(candidates []Candidate) (Result, error) {
	existing := im.store.Records()
	names := make(map[string]bool, len(existing))
	for _, r := range existing {
		names[r.Name] = true
	}

	var res Result
	next := existing
	for _, c := range candidates {
		if c.validate() != nil || names[c.Name] {
			res.Skipped = append(res.Skipped, c)
			continue
		}
		rec := im.record(c)
		next = append(next, rec)
		names[c.Name] = true
		res.Imported = append(res.Imported, recordToSource(rec))
	}

	if len(res.Imported) == 0 {
		return res, nil
	}
	if err := im.store.Replace(next); err != nil {
		return Result{}, err
	}
	return res, nil
}

func recordToSource(r store.ImportedRecord) source.PlayerSource {
	return source.FromImported(r.ID, r.Name, r.MovieURL, r.TVURL, r.UseSandbox, r.Source == store.SourcePublic)
}
