package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"sohio.net/cardmarket/internal/carddb"
	"sohio.net/cardmarket/internal/config"
	"sohio.net/cardmarket/internal/scrape"
)

func init() {
	rootCmd.AddCommand(addSetCmd)
}

var addSetCmd = &cobra.Command{
	Use:   "add-set <set code>",
	Short: "Scrapes one set and replaces its records in the database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if err := addSet(cmd.Context(), cfg, newScraper(cfg), args[0]); err != nil {
			fatal("failed to add set", err)
		}
	},
}

// addSet replaces one set in the database with a fresh scrape. An empty or
// interrupted scrape leaves the database untouched.
func addSet(ctx context.Context, cfg config.Config, s *scrape.Scraper, setCode string) error {
	setCode = strings.ToLower(setCode)

	cards, err := s.ScrapeSet(ctx, setCode)
	if err != nil {
		return fmt.Errorf("error scraping set: %w", err)
	}
	if ctx.Err() != nil {
		slog.WarnContext(ctx, "scrape interrupted, database left untouched", "set", strings.ToUpper(setCode))
		return nil
	}
	if len(cards) == 0 {
		slog.WarnContext(ctx, "no data found, database left untouched", "set", strings.ToUpper(setCode))
		return nil
	}
	fresh := carddb.Flatten(cards)

	db, err := carddb.Load(cfg.DataFile)
	if err != nil {
		return err
	}
	merged := carddb.MergeSet(db, setCode, fresh)

	if err := carddb.Save(cfg.DataFile, merged); err != nil {
		return err
	}
	slog.InfoContext(ctx, "updated database",
		"set", strings.ToUpper(setCode),
		"scraped", len(fresh),
		"removed", len(db)-(len(merged)-len(fresh)),
		"before", len(db),
		"after", len(merged),
	)
	return nil
}
