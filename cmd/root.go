// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marquee/internal/config"
	"marquee/internal/log"
	"marquee/internal/registry"
	"marquee/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagFeedURL  string
	flagDataDir  string
	flagJSON     bool
	flagLogLevel string
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Manage and watch embeddable video player sources from the terminal",
	Long: `Marquee keeps a registry of embeddable video players — built-in,
custom and imported — resolves their templated URLs against a movie or
episode, and renders a sandbox-correct watch page.`,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFeedURL, "feed", "", "Override the public source feed URL")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace | debug | info | warn | error")

	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagFeedURL != "" {
		cfg.FeedURL = flagFeedURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Configure(cfg.LogLevel, nil)
	return nil
}

// stores bundles the persistence layer shared by every command.
type stores struct {
	custom   *store.CustomStore
	imported *store.ImportedStore
	prefs    *store.Prefs
	registry *registry.Registry
}

// openStores opens the key-value store under the data directory.
func openStores() (*stores, error) {
	dir := flagDataDir
	if dir == "" {
		var err error
		dir, err = store.DataDir()
		if err != nil {
			return nil, err
		}
	}

	kv, err := store.NewFileKV(dir)
	if err != nil {
		return nil, err
	}

	s := &stores{
		custom:   store.NewCustomStore(kv),
		imported: store.NewImportedStore(kv),
		prefs:    store.NewPrefs(kv),
	}
	s.registry = registry.New(s.custom, s.imported)
	return s, nil
}
