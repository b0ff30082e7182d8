package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"marquee/internal/httputil"
	"marquee/internal/ingest"
	"marquee/internal/store"
	"marquee/internal/ui"
)

var flagImportAll bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import player sources from JSON",
	Long: `Import player sources from a JSON file (or stdin with "-"). The payload
is a single object or an array of {name, movieUrl, tvUrl, url, useSandbox}.
Without a file argument the public source feed is browsed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: importRun,
}

var importListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported players",
	RunE:  importListRun,
}

var importClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all imported players",
	RunE:  importClearRun,
}

func init() {
	importCmd.Flags().BoolVarP(&flagImportAll, "all", "a", false, "Import every candidate without prompting")

	importCmd.AddCommand(importListCmd)
	importCmd.AddCommand(importClearCmd)
}

func importRun(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	var candidates []ingest.Candidate
	origin := store.SourcePublic

	if len(args) == 1 {
		origin = store.SourceManual
		raw, err := readPayload(args[0])
		if err != nil {
			return err
		}
		// A parse failure stops here: nothing has been persisted yet.
		candidates, err = ingest.ParseBatch(raw)
		if err != nil {
			return err
		}
	} else {
		if cfg.FeedURL == "" {
			return fmt.Errorf("no source feed configured; set feed_url or pass a file")
		}
		candidates, err = ingest.FetchFeed(httputil.NewClient(), cfg.FeedURL)
		if err != nil {
			return fmt.Errorf("%w (already-imported players are unaffected, retry later)", err)
		}
	}

	if len(candidates) == 0 {
		fmt.Println("No players found in payload.")
		return nil
	}
	fmt.Printf("Parsed %d player(s)\n", len(candidates))

	importer := ingest.NewImporter(s.imported, origin)

	if !flagImportAll {
		picked, err := pickCandidates(candidates, s.imported.Names())
		if err != nil {
			return err
		}
		candidates = picked
	}

	result, err := importer.ImportAll(candidates)
	if err != nil {
		return fmt.Errorf("importing players: %w", err)
	}

	for _, p := range result.Imported {
		fmt.Printf("Imported %q (%s)\n", p.Name, p.ID)
	}
	for _, c := range result.Skipped {
		fmt.Printf("Skipped %q (already imported or invalid)\n", c.Name)
	}
	return nil
}

// pickCandidates lets the user choose one candidate via fzf; already
// imported names are labelled so re-imports are an informed choice.
func pickCandidates(candidates []ingest.Candidate, imported map[string]bool) ([]ingest.Candidate, error) {
	items := make([]string, len(candidates))
	for i, c := range candidates {
		label := c.Name
		if c.UseSandbox {
			label += " [sandboxed]"
		}
		if imported[c.Name] {
			label += " (imported)"
		}
		items[i] = label
	}

	idx, err := ui.Select("Import", items)
	if err != nil {
		return nil, err
	}
	return candidates[idx : idx+1], nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func importListRun(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	recs := s.imported.Records()
	if len(recs) == 0 {
		fmt.Println("No imported players.")
		return nil
	}
	for _, r := range recs {
		sandbox := ""
		if r.UseSandbox {
			sandbox = " [sandboxed]"
		}
		fmt.Printf("%-14s %-7s%s  (%s)\n", r.Name, r.Source, sandbox, r.ID)
	}
	return nil
}

func importClearRun(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	n := len(s.imported.Records())
	if n == 0 {
		fmt.Println("No imported players.")
		return nil
	}

	ok, err := ui.Confirm(fmt.Sprintf("Clear all %d imported player(s)?", n))
	if err != nil || !ok {
		return err
	}
	if err := s.imported.Clear(); err != nil {
		return err
	}
	fmt.Println("All imported players cleared.")
	return nil
}
