package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"sohio.net/cardmarket/internal/carddb"
	"sohio.net/cardmarket/internal/snapshot"
)

var snapshotOut string

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "", "The SQLite file to write, overrides snapshot_db.")
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [--out <path/to/cards.db>]",
	Short: "Writes the card database to SQLite for diffing with comparer.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		out := cfg.SnapshotDB
		if snapshotOut != "" {
			out = snapshotOut
		}

		records, err := carddb.Load(cfg.DataFile)
		if err != nil {
			fatal("failed to load database", err)
		}
		if err := snapshot.Write(cmd.Context(), out, records); err != nil {
			fatal("failed to write snapshot", err)
		}
		slog.Info("wrote snapshot", "path", out, "records", len(records))
	},
}
