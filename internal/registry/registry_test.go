package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"marquee/internal/source"
	"marquee/internal/store"
)

func newRegistry(t *testing.T) (*Registry, *store.CustomStore, *store.ImportedStore, string) {
	t.Helper()
	dir := t.TempDir()
	kv, err := store.NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	custom := store.NewCustomStore(kv)
	imported := store.NewImportedStore(kv)
	return New(custom, imported), custom, imported, dir
}

func TestAllStartsWithBuiltIns(t *testing.T) {
	r, _, _, _ := newRegistry(t)

	all := r.All()
	builtins := source.BuiltIns()
	if len(all) != len(builtins) {
		t.Fatalf("empty stores: got %d players, want %d built-ins", len(all), len(builtins))
	}
	for i, p := range builtins {
		if all[i].ID != p.ID {
			t.Errorf("player %d = %s, want %s", i, all[i].ID, p.ID)
		}
	}
}

func TestAllIncludesAllTiers(t *testing.T) {
	r, custom, imported, _ := newRegistry(t)

	if _, err := custom.Create(store.CustomInput{Name: "Mine", BaseURL: "https://mine.example/{tmdb_id}", MediaType: source.SupportBoth}); err != nil {
		t.Fatal(err)
	}
	if err := imported.Replace([]store.ImportedRecord{{
		ID: "public-1", Name: "Feed", MovieURL: "https://feed.example/{tmdb_id}", Source: store.SourcePublic,
	}}); err != nil {
		t.Fatal(err)
	}

	all := r.All()
	want := len(source.BuiltIns()) + 2
	if len(all) != want {
		t.Fatalf("got %d players, want %d", len(all), want)
	}
}

func TestDeduplicationBuiltInWins(t *testing.T) {
	r, _, imported, _ := newRegistry(t)

	// Imported entry colliding with a built-in on (name, id).
	builtin := source.FirstBuiltIn()
	if err := imported.Replace([]store.ImportedRecord{{
		ID:       builtin.ID,
		Name:     builtin.Name,
		MovieURL: "https://evil.example/{tmdb_id}",
		Source:   store.SourcePublic,
	}}); err != nil {
		t.Fatal(err)
	}

	var matches []source.PlayerSource
	for _, p := range r.All() {
		if p.Name == builtin.Name && p.ID == builtin.ID {
			matches = append(matches, p)
		}
	}
	if len(matches) != 1 {
		t.Fatalf("got %d entries for the colliding pair, want 1", len(matches))
	}
	if matches[0].Origin != source.BuiltIn {
		t.Errorf("precedence violated: surviving entry has origin %v, want built-in", matches[0].Origin)
	}
	if matches[0].MovieTemplate != builtin.MovieTemplate {
		t.Errorf("surviving entry carries the imported template %q", matches[0].MovieTemplate)
	}
}

func TestSameNameDifferentIDBothKept(t *testing.T) {
	r, _, imported, _ := newRegistry(t)

	if err := imported.Replace([]store.ImportedRecord{
		{ID: "a", Name: "Twin", MovieURL: "https://one.example/{tmdb_id}", Source: store.SourceManual},
		{ID: "b", Name: "Twin", MovieURL: "https://two.example/{tmdb_id}", Source: store.SourceManual},
	}); err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, p := range r.All() {
		if p.Name == "Twin" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("same name with different ids must not collapse, got %d entries", count)
	}
}

func TestCorruptTierDoesNotHideOthers(t *testing.T) {
	r, _, imported, dir := newRegistry(t)

	if err := imported.Replace([]store.ImportedRecord{{
		ID: "x", Name: "Feed", MovieURL: "https://feed.example/{tmdb_id}", Source: store.SourcePublic,
	}}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "custom_sources.json"), []byte("][garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	all := r.All()
	want := len(source.BuiltIns()) + 1
	if len(all) != want {
		t.Errorf("corrupt custom tier: got %d players, want %d", len(all), want)
	}
}

func TestDeleteBuiltInRejected(t *testing.T) {
	r, _, _, _ := newRegistry(t)

	err := r.Delete(source.FirstBuiltIn().ID)
	if !errors.Is(err, ErrBuiltIn) {
		t.Errorf("Delete(built-in) = %v, want ErrBuiltIn", err)
	}
}

func TestDeleteFromEitherStore(t *testing.T) {
	r, custom, imported, _ := newRegistry(t)

	created, err := custom.Create(store.CustomInput{Name: "Mine", BaseURL: "https://mine.example/{tmdb_id}", MediaType: source.SupportBoth})
	if err != nil {
		t.Fatal(err)
	}
	if err := imported.Replace([]store.ImportedRecord{{
		ID: "public-1", Name: "Feed", MovieURL: "https://feed.example/{tmdb_id}", Source: store.SourcePublic,
	}}); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete("public-1"); err != nil {
		t.Fatal(err)
	}

	if len(r.All()) != len(source.BuiltIns()) {
		t.Error("deleted sources still present in registry")
	}
}
