package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"sohio.net/cardmarket/internal/carddb"
	"sohio.net/cardmarket/internal/translate"
)

var translateApplyOnly bool

func init() {
	translateCmd.Flags().BoolVar(&translateApplyOnly, "apply-only", false, "Only apply cached translations.")
	rootCmd.AddCommand(translateCmd)
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translates card names through the cache and the configured translator.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := cmd.Context()

		if !translateApplyOnly && cfg.Translate.Endpoint == "" {
			fatal("cannot translate", errors.New("translate.endpoint is not configured"))
		}

		records, err := carddb.Load(cfg.DataFile)
		if err != nil {
			fatal("failed to load database", err)
		}
		if len(records) == 0 {
			slog.WarnContext(ctx, "no cards found", "path", cfg.DataFile)
			return
		}

		cache, err := translate.LoadCache(cfg.CacheFile)
		if err != nil {
			fatal("failed to load translation cache", err)
		}
		slog.InfoContext(ctx, "loaded translation cache", "entries", len(cache))

		if !translateApplyOnly {
			pending := translate.Pending(records, cache)
			slog.InfoContext(ctx, "names to translate", "count", len(pending))

			tr := translate.NewHTTPTranslator(translate.HTTPOptions{
				Endpoint: cfg.Translate.Endpoint,
				APIKey:   cfg.Translate.APIKey,
				Source:   cfg.Translate.Source,
				Target:   cfg.Translate.Target,
				RPS:      cfg.Translate.RPS,
				Timeout:  cfg.Timeout(),
			})
			_, err := translate.Run(ctx, tr, cache, pending, cfg.Translate.BatchSize, func(c translate.Cache) error {
				return c.Save(cfg.CacheFile)
			})
			if err != nil {
				slog.WarnContext(ctx, "translation stopped early", "err", err)
			}
		}

		n := translate.Apply(records, cache)
		if err := carddb.Save(cfg.DataFile, records); err != nil {
			fatal("failed to save database", err)
		}
		slog.InfoContext(ctx, "applied translations", "records", n)
	},
}
