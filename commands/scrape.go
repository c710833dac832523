package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"sohio.net/cardmarket/internal/carddb"
	"sohio.net/cardmarket/internal/config"
	"sohio.net/cardmarket/internal/scrape"
	"sohio.net/cardmarket/internal/snapshot"
)

var (
	scrapeNoSearch bool
	scrapeSnapshot bool
)

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeNoSearch, "no-search", false, "Skip the keyword searches.")
	scrapeCmd.Flags().BoolVar(&scrapeSnapshot, "snapshot", false, "Also write the SQLite snapshot.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrapes every configured set and keyword into a new database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := cmd.Context()

		records, err := scrapeAll(ctx, cfg, newScraper(cfg), !scrapeNoSearch)
		if err != nil {
			fatal("scrape did not complete", err)
		}
		slog.InfoContext(ctx, "scrape finished", "records", len(records), "path", cfg.DataFile)

		if scrapeSnapshot {
			if err := snapshot.Write(ctx, cfg.SnapshotDB, records); err != nil {
				fatal("failed to write snapshot", err)
			}
		}
	},
}

// checkpointPath is where scrapeAll keeps its progress until the run completes.
func checkpointPath(dataFile string) string {
	return dataFile + ".partial"
}

// scrapeAll aggregates every set and keyword, checkpointing after each one.
// The database is replaced only once the whole run completes; an interrupted
// run leaves it untouched and keeps the checkpoint.
func scrapeAll(ctx context.Context, cfg config.Config, s *scrape.Scraper, search bool) ([]carddb.Record, error) {
	master := scrape.Collection{}
	partial := checkpointPath(cfg.DataFile)
	var records []carddb.Record

	checkpoint := func() error {
		records = carddb.Flatten(master)
		return carddb.Save(partial, records)
	}

	for _, set := range cfg.Sets {
		if ctx.Err() != nil {
			break
		}
		cards, err := s.ScrapeSet(ctx, set)
		if err != nil {
			slog.WarnContext(ctx, "skipping set", "set", set, "err", err)
			continue
		}
		master.Merge(cards)
		if err := checkpoint(); err != nil {
			return nil, err
		}
	}

	if search {
		for _, keyword := range cfg.Keywords {
			if ctx.Err() != nil {
				break
			}
			cards, err := s.ScrapeSearch(ctx, keyword)
			if err != nil {
				slog.WarnContext(ctx, "skipping keyword", "keyword", keyword, "err", err)
				continue
			}
			master.Merge(cards)
			if err := checkpoint(); err != nil {
				return nil, err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "scrape interrupted, database left untouched", "checkpoint", partial)
		return nil, fmt.Errorf("scrape interrupted: %w", err)
	}

	if records == nil {
		if err := checkpoint(); err != nil {
			return nil, err
		}
	}
	if err := os.Rename(partial, cfg.DataFile); err != nil {
		return nil, fmt.Errorf("error replacing %s: %w", cfg.DataFile, err)
	}
	return records, nil
}
