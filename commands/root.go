package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"sohio.net/cardmarket/internal/config"
	"sohio.net/cardmarket/internal/fetch"
	"sohio.net/cardmarket/internal/scrape"
)

// LogLevel is the level of the default logger, raised to debug by --verbose.
var LogLevel = new(slog.LevelVar)

var (
	configPath string
	dataFile   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cardmarket",
	Short: "cardmarket scrapes secondary-market card listings into a local database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			LogLevel.Set(slog.LevelDebug)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The configuration file.")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "The card database, overrides data_file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("failed to read config", err)
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	return cfg
}

func newScraper(cfg config.Config) *scrape.Scraper {
	f, err := fetch.New(fetch.Options{
		UserAgent: cfg.UserAgent,
		Delay:     cfg.Delay(),
		Timeout:   cfg.Timeout(),
		CacheDir:  cfg.PageCacheDir,
	})
	if err != nil {
		fatal("failed to initialize fetcher", err)
	}
	return scrape.New(f, scrape.Options{
		BaseURL:   cfg.BaseURL,
		SearchURL: cfg.SearchURL,
		MaxPages:  cfg.MaxPages,
	})
}
