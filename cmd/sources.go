package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marquee/internal/httputil"
	"marquee/internal/source"
	"marquee/internal/store"
)

var (
	flagSourceName    string
	flagSourceURL     string
	flagSourceSandbox bool
	flagSourceType    string
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage player sources",
	RunE:  sourcesListRun,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom player source",
	Long: `Add a custom player source from a URL template. Templates may contain
{imdb_id}, {tmdb_id}, {season} and {episode} placeholders, e.g.
https://example.com/player/{tmdb_id}?s={season}&e={episode}`,
	RunE: sourcesAddRun,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom or imported source",
	Args:  cobra.ExactArgs(1),
	RunE:  sourcesRemoveRun,
}

var sourcesDefaultCmd = &cobra.Command{
	Use:   "default [id]",
	Short: "Show or set the default player",
	Args:  cobra.MaximumNArgs(1),
	RunE:  sourcesDefaultRun,
}

func init() {
	sourcesAddCmd.Flags().StringVarP(&flagSourceName, "name", "n", "", "Display name for the source")
	sourcesAddCmd.Flags().StringVarP(&flagSourceURL, "url", "u", "", "URL template (absolute http(s) URL)")
	sourcesAddCmd.Flags().BoolVar(&flagSourceSandbox, "sandbox", false, "Embed this source in a sandboxed iframe")
	sourcesAddCmd.Flags().StringVarP(&flagSourceType, "type", "t", "both", "Supported media type: movie | tv | both")

	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesDefaultCmd)
}

func sourcesListRun(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	players := s.registry.All()
	defaultID := s.prefs.DefaultPlayerID()

	if flagJSON {
		type row struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Origin    string `json:"origin"`
			MediaType string `json:"mediaType"`
			Sandboxed bool   `json:"sandboxed"`
			Default   bool   `json:"default"`
		}
		rows := make([]row, 0, len(players))
		for _, p := range players {
			rows = append(rows, row{
				ID:        p.ID,
				Name:      p.Name,
				Origin:    p.Origin.String(),
				MediaType: string(p.Support()),
				Sandboxed: p.Sandboxed,
				Default:   p.ID == defaultID,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	for _, p := range players {
		marker := " "
		if p.ID == defaultID {
			marker = "*"
		}
		sandbox := ""
		if p.Sandboxed {
			sandbox = " [sandboxed]"
		}
		fmt.Printf("%s %-14s %-10s %-5s%s  (%s)\n", marker, p.Name, p.Origin, p.Support(), sandbox, p.ID)
	}
	return nil
}

func sourcesAddRun(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	created, err := s.custom.Create(store.CustomInput{
		Name:       flagSourceName,
		BaseURL:    flagSourceURL,
		UseSandbox: flagSourceSandbox,
		MediaType:  source.ParseMediaSupport(flagSourceType),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %q (%s)\n", created.Name, created.ID)
	return nil
}

func sourcesRemoveRun(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := httputil.ValidateID(id); err != nil {
		return err
	}

	s, err := openStores()
	if err != nil {
		return err
	}

	if err := s.registry.Delete(id); err != nil {
		return err
	}

	// Removing the default player resets the preference to the fallback.
	if s.prefs.DefaultPlayerID() == id {
		if err := s.prefs.SetDefaultPlayerID(source.FirstBuiltIn().ID); err != nil {
			return err
		}
	}

	fmt.Printf("Removed %s\n", id)
	return nil
}

func sourcesDefaultRun(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		id := s.prefs.DefaultPlayerID()
		if id == "" {
			id = source.FirstBuiltIn().ID
		}
		fmt.Println(id)
		return nil
	}

	id := args[0]
	if err := httputil.ValidateID(id); err != nil {
		return err
	}
	if _, ok := s.registry.Find(id); !ok {
		return fmt.Errorf("no player source with id %q", id)
	}
	return s.prefs.SetDefaultPlayerID(id)
}
