// Package watchlog manages the continue-watching log as a TSV file under
// the data directory. Uses atomic writes (temp+rename) to prevent data
// corruption.
package watchlog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"

	"marquee/internal/media"
	"marquee/internal/store"
)

// TSV columns: tmdb_id, imdb_id, title, type, season, episode, player_id, watched_at
const numColumns = 8

// Path returns the watch log location.
func Path() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watchlog.tsv"), nil
}

// Load reads the log and returns all entries, most recent last. Malformed
// lines are skipped rather than failing the whole log.
func Load() ([]media.WatchEntry, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening watch log: %w", err)
	}
	defer f.Close()

	var entries []media.WatchEntry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading watch log: %w", err)
	}

	return entries, nil
}

// Save writes or updates an entry. An item is keyed by id plus
// season/episode, so each episode keeps its own slot.
func Save(entry media.WatchEntry) error {
	entries, _ := Load()

	found := false
	for i, e := range entries {
		if e.TMDBID == entry.TMDBID && e.Season == entry.Season && e.Episode == entry.Episode {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entry)
	}

	return write(entries)
}

// Remove deletes an entry from the log.
func Remove(tmdbID string, season, episode int) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	var filtered []media.WatchEntry
	for _, e := range entries {
		if !(e.TMDBID == tmdbID && e.Season == season && e.Episode == episode) {
			filtered = append(filtered, e)
		}
	}

	return write(filtered)
}

// write atomically replaces the log file.
func write(entries []media.WatchEntry) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(formatLine(e))
		buf.WriteByte('\n')
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing watch log: %w", err)
	}
	return nil
}

// FormatForDisplay creates display strings for fzf selection.
func FormatForDisplay(entries []media.WatchEntry) []string {
	var items []string
	for _, e := range entries {
		display := e.Title
		if e.Type == media.TV {
			display = fmt.Sprintf("%s S%02dE%02d", e.Title, e.Season, e.Episode)
		}
		if e.PlayerID != "" {
			display += fmt.Sprintf(" (%s)", e.PlayerID)
		}
		items = append(items, display)
	}
	return items
}

// parseLine parses a TSV line into a WatchEntry.
func parseLine(line string) (media.WatchEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return media.WatchEntry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	season, _ := strconv.Atoi(fields[4])
	episode, _ := strconv.Atoi(fields[5])
	watchedAt, _ := strconv.ParseInt(fields[7], 10, 64)

	return media.WatchEntry{
		TMDBID:    fields[0],
		IMDbID:    fields[1],
		Title:     fields[2],
		Type:      media.ParseMediaType(fields[3]),
		Season:    season,
		Episode:   episode,
		PlayerID:  fields[6],
		WatchedAt: watchedAt,
	}, nil
}

// formatLine converts a WatchEntry to a TSV line.
func formatLine(e media.WatchEntry) string {
	return strings.Join([]string{
		e.TMDBID,
		e.IMDbID,
		e.Title,
		e.Type.String(),
		strconv.Itoa(e.Season),
		strconv.Itoa(e.Episode),
		e.PlayerID,
		strconv.FormatInt(e.WatchedAt, 10),
	}, "\t")
}
