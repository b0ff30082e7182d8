package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/media"
	"marquee/internal/playback"
	"marquee/internal/source"
	"marquee/internal/ui"
	"marquee/internal/watchlog"
)

var (
	flagWatchIMDb    string
	flagWatchTMDB    string
	flagWatchTitle   string
	flagWatchType    string
	flagWatchSeason  int
	flagWatchEpisode int
	flagWatchPlayer  string
	flagWatchOut     string
	flagWatchOpen    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Resolve a player URL and render the watch page",
	Long: `Resolve the selected player's URL template against an item's identifiers
and write a local watch page embedding it. Without --player the player is
picked interactively from the registry.`,
	RunE: watchRun,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchIMDb, "imdb", "", "IMDb ID, e.g. tt0133093 (may be empty)")
	watchCmd.Flags().StringVar(&flagWatchTMDB, "tmdb", "", "TMDB ID, e.g. 603")
	watchCmd.Flags().StringVar(&flagWatchTitle, "title", "", "Display title")
	watchCmd.Flags().StringVarP(&flagWatchType, "type", "t", "movie", "Media type: movie | tv")
	watchCmd.Flags().IntVarP(&flagWatchSeason, "season", "s", 0, "Season number (TV)")
	watchCmd.Flags().IntVarP(&flagWatchEpisode, "episode", "e", 0, "Episode number (TV)")
	watchCmd.Flags().StringVarP(&flagWatchPlayer, "player", "p", "", "Player source id (default: stored preference)")
	watchCmd.Flags().StringVarP(&flagWatchOut, "out", "o", "", "Write the watch page to this file")
	watchCmd.Flags().BoolVar(&flagWatchOpen, "open", false, "Open the watch page in the default browser")
}

func watchRun(cmd *cobra.Command, args []string) error {
	if flagWatchTMDB == "" && flagWatchIMDb == "" {
		return fmt.Errorf("at least one of --imdb or --tmdb is required")
	}

	s, err := openStores()
	if err != nil {
		return err
	}

	item := media.Item{
		IMDbID:  flagWatchIMDb,
		TMDBID:  flagWatchTMDB,
		Title:   flagWatchTitle,
		Type:    media.ParseMediaType(flagWatchType),
		Season:  flagWatchSeason,
		Episode: flagWatchEpisode,
	}

	session := playback.NewSession(s.registry, s.prefs, nil)
	sel := session.Mount(item)

	switch {
	case flagWatchPlayer != "":
		if sel, err = session.Select(flagWatchPlayer); err != nil {
			// Player removed since it was logged or typed; degrade to the
			// fallback instead of failing the whole view.
			sel = session.Refresh()
			fmt.Fprintf(os.Stderr, "player %q is gone, using %s\n", flagWatchPlayer, sel.Player.Name)
		}
	default:
		if sel, err = pickPlayer(session); err != nil {
			return err
		}
	}

	if !sel.Available {
		return fmt.Errorf("%q cannot play this item (%w)", sel.Player.Name, source.ErrUnavailable)
	}

	if flagJSON {
		out := map[string]interface{}{
			"player":    sel.Player.Name,
			"playerId":  sel.Player.ID,
			"url":       sel.URL,
			"sandboxed": sel.Player.Sandboxed,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if err := writeWatchPage(sel, item); err != nil {
		return err
	}

	if cfg.History {
		entry := media.WatchEntry{
			TMDBID:    item.TMDBID,
			IMDbID:    item.IMDbID,
			Title:     item.Title,
			Type:      item.Type,
			Season:    item.Season,
			Episode:   item.Episode,
			PlayerID:  sel.Player.ID,
			WatchedAt: time.Now().Unix(),
		}
		if err := watchlog.Save(entry); err != nil {
			fmt.Fprintf(os.Stderr, "saving watch log failed: %v\n", err)
		}
	}

	return nil
}

// pickPlayer refreshes the registry (mirrors opening the selector dropdown)
// and lets the user choose; the selection survives for the session.
func pickPlayer(session *playback.Session) (playback.Selection, error) {
	sel := session.Refresh()
	players := session.Players()

	items := make([]string, len(players))
	for i, p := range players {
		label := fmt.Sprintf("%s (%s)", p.Name, p.Origin)
		if p.ID == sel.Player.ID {
			label += " *"
		}
		items[i] = label
	}

	idx, err := ui.Select("Player", items)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return sel, nil // keep the mounted default
		}
		return sel, err
	}
	return session.Select(players[idx].ID)
}

func writeWatchPage(sel playback.Selection, item media.Item) error {
	path := flagWatchOut
	if path == "" {
		path = filepath.Join(os.TempDir(), "marquee-watch.html")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating watch page: %w", err)
	}
	defer f.Close()

	title := item.Title
	if title == "" {
		title = "marquee"
	}
	if err := playback.WritePage(f, title, sel); err != nil {
		return err
	}

	fmt.Printf("%s\n", sel.URL)
	fmt.Printf("Watch page: %s\n", path)

	if flagWatchOpen {
		return openBrowser(path)
	}
	return nil
}

// openBrowser launches the platform's URL opener with an explicit argument
// slice, never a shell.
func openBrowser(path string) error {
	var name string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "explorer"
	default:
		name = "xdg-open"
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return exec.Command(name, path).Start()
}
