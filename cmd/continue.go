package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/ui"
	"marquee/internal/watchlog"
)

var continueCmd = &cobra.Command{
	Use:   "continue",
	Short: "Resume from the continue-watching log",
	RunE:  continueRun,
}

func continueRun(cmd *cobra.Command, args []string) error {
	entries, err := watchlog.Load()
	if err != nil {
		return fmt.Errorf("loading watch log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing to continue watching.")
		return nil
	}

	items := watchlog.FormatForDisplay(entries)
	idx, err := ui.Select("Continue", items)
	if err != nil {
		return err
	}

	selected := entries[idx]

	// Re-run the watch flow with the logged identifiers and player.
	flagWatchIMDb = selected.IMDbID
	flagWatchTMDB = selected.TMDBID
	flagWatchTitle = selected.Title
	flagWatchType = selected.Type.String()
	flagWatchSeason = selected.Season
	flagWatchEpisode = selected.Episode
	flagWatchPlayer = selected.PlayerID

	return watchRun(cmd, nil)
}
