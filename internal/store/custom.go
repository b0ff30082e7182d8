package store

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"marquee/internal/log"
	"marquee/internal/source"
)

const customKey = "custom_sources.json"

// CustomRecord is the persisted form of a user-created source.
type CustomRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BaseURL    string `json:"baseUrl"`
	UseSandbox bool   `json:"useSandbox"`
	MediaType  string `json:"mediaType"`
}

// CustomInput is the management-form payload for creating a source.
type CustomInput struct {
	Name       string
	BaseURL    string
	UseSandbox bool
	MediaType  source.MediaSupport
}

// CustomStore manages user-created player sources.
type CustomStore struct {
	kv KV
}

// NewCustomStore returns a store backed by kv.
func NewCustomStore(kv KV) *CustomStore {
	return &CustomStore{kv: kv}
}

// records loads the persisted set. Corrupt JSON is treated as empty and
// logged: a broken custom-source file must not hide built-ins or imports.
func (s *CustomStore) records() []CustomRecord {
	data, err := s.kv.Get(customKey)
	if err != nil || len(data) == 0 {
		if err != nil {
			l := log.With("store")
			l.Warn().Err(err).Msg("reading custom sources, treating as empty")
		}
		return nil
	}

	var recs []CustomRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		l := log.With("store")
		l.Warn().Err(err).Msg("custom sources corrupt, treating as empty")
		return nil
	}
	return recs
}

func (s *CustomStore) persist(recs []CustomRecord) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return s.kv.Put(customKey, data)
}

// Create validates and persists a new custom source. Validation order is
// fixed: empty name, then empty URL, then URL shape. A duplicate base URL is
// skipped with a warning rather than failing hard; the returned source is
// the already-stored one.
func (s *CustomStore) Create(input CustomInput) (source.PlayerSource, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return source.PlayerSource{}, source.ErrEmptyName
	}
	baseURL := strings.TrimSpace(input.BaseURL)
	if baseURL == "" {
		return source.PlayerSource{}, source.ErrEmptyURL
	}
	if err := source.ValidateBaseURL(baseURL); err != nil {
		return source.PlayerSource{}, err
	}

	recs := s.records()
	for _, r := range recs {
		if r.BaseURL == baseURL {
			l := log.With("store")
			l.Warn().Str("url", baseURL).Msg("a source with this URL already exists, skipping")
			return recordToSource(r), nil
		}
	}

	rec := CustomRecord{
		ID:         uuid.NewString(),
		Name:       name,
		BaseURL:    baseURL,
		UseSandbox: input.UseSandbox,
		MediaType:  string(input.MediaType),
	}
	if err := s.persist(append(recs, rec)); err != nil {
		return source.PlayerSource{}, err
	}
	return recordToSource(rec), nil
}

// Delete removes a source by id. Absent ids are a no-op.
func (s *CustomStore) Delete(id string) error {
	recs := s.records()
	kept := recs[:0]
	for _, r := range recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}
	return s.persist(kept)
}

// List returns all stored custom sources in insertion order.
func (s *CustomStore) List() []source.PlayerSource {
	recs := s.records()
	out := make([]source.PlayerSource, 0, len(recs))
	for _, r := range recs {
		out = append(out, recordToSource(r))
	}
	return out
}

func recordToSource(r CustomRecord) source.PlayerSource {
	return source.FromCustom(r.ID, r.Name, r.BaseURL, r.UseSandbox, source.ParseMediaSupport(r.MediaType))
}
