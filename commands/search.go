package commands

import (
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"sohio.net/cardmarket/internal/carddb"
)

var searchOut string

func init() {
	searchCmd.Flags().StringVar(&searchOut, "out", "", "Write the flattened results to this file.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Searches the listings for a keyword and prints the variants found.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		cards, err := newScraper(cfg).ScrapeSearch(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to search", err)
		}
		records := carddb.Flatten(cards)
		if len(records) == 0 {
			slog.Warn("no data found", "keyword", args[0])
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Variant", "Rarity", "Price", "Name"})
		for _, r := range records {
			t.AppendRow(table.Row{r.CardCode, r.VariantName, r.Rarity, r.Price, r.BaseName})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		if searchOut != "" {
			if err := carddb.Save(searchOut, records); err != nil {
				fatal("failed to write results", err)
			}
		}
	},
}
